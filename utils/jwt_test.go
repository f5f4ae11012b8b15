package utils

import (
	"os"
	"testing"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
	os.Exit(m.Run())
}

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "admin@test.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "admin@test.com" || claims.Role != "admin" {
		t.Errorf("Claims mismatch: %+v", claims)
	}
	if claims.Issuer != "quesec-backend" {
		t.Errorf("Expected issuer quesec-backend, got %s", claims.Issuer)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-jwt"); err == nil {
		t.Error("Expected an error for malformed token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "admin@test.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	os.Setenv("JWT_SECRET", "a-completely-different-secret")
	defer os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	if _, err := ValidateToken(token); err == nil {
		t.Error("Expected an error for token signed with another secret")
	}
}

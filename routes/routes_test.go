package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

// The routing table is exercised without a database: these paths are
// rejected by middleware or answered before any handler touches storage.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, nil)
	return r
}

func TestHealthRoute(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", w.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	r := testRouter()

	paths := []struct {
		method string
		path   string
	}{
		{"POST", "/api/admin/categories"},
		{"POST", "/api/admin/products"},
		{"POST", "/api/admin/products/some-id/duplicate"},
		{"DELETE", "/api/admin/variations/some-id"},
		{"GET", "/api/auth/profile"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown route, got %d", w.Code)
	}
}

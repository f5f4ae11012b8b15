package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxSlugAttempts bounds the suffix probe so a pathological dataset turns
// into an error instead of an unbounded scan.
const maxSlugAttempts = 1000

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen. The result may be empty.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// UniqueSlug derives a slug from name that no other row of model holds,
// probing base, base-1, base-2 and so on. An empty base falls back to the
// supplied placeholder. excludeID keeps a row from colliding with itself on
// re-save; scopes narrow the uniqueness domain (per-product variation slugs).
func UniqueSlug(tx *gorm.DB, model interface{}, name, fallback string, excludeID uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = fallback
	}

	slug := base
	for n := 1; n <= maxSlugAttempts; n++ {
		// NewDB so the probe does not inherit the statement being saved.
		query := tx.Session(&gorm.Session{NewDB: true}).Model(model).Where("slug = ?", slug)
		if excludeID != uuid.Nil {
			query = query.Where("id <> ?", excludeID)
		}
		for _, scope := range scopes {
			query = scope(query)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	return "", fmt.Errorf("could not find a free slug for %q", name)
}

// IsUniqueViolation reports whether err is a unique-index violation. The
// string checks cover PostgreSQL and SQLite drivers that predate GORM's
// translated errors.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

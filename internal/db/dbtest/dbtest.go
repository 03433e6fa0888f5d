// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"recipehub/internal/db"
)

// New returns a migrated in-memory SQLite database closed at test cleanup.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewSQLite("file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

package testutils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mdqapps/turnos-api/pkg/database"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory SQLite database private to one test.
// A single connection is kept open so concurrent writers queue instead of
// hitting shared-cache table locks.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.InitDB(database.Options{
		DataPath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/db"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// NewSeededTestDB creates a temporary database holding parkings and bookings.
func NewSeededTestDB(t *testing.T, parkings []models.Parking, bookings []models.Booking) *db.DB {
	t.Helper()

	database := NewTestDB(t)
	if err := database.ReplaceAll(context.Background(), parkings, bookings); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return database
}

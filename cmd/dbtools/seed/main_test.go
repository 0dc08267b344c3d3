package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/db"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/fixtures"
)

func TestRunWritesSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "prepark.db")

	if err := run(ctx, options{dbPath: dbPath, seed: fixtures.DefaultSeed}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	// seeding twice replaces rather than duplicates
	if err := run(ctx, options{dbPath: dbPath, seed: fixtures.DefaultSeed}); err != nil {
		t.Fatalf("second run() error = %v", err)
	}

	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	defer database.Close()

	count, err := database.Queries.CountBookings(ctx)
	if err != nil {
		t.Fatalf("CountBookings() error = %v", err)
	}
	want := len(fixtures.SampleBookings(fixtures.DefaultSeed, fixtures.SampleParkings()))
	if int(count) != want {
		t.Fatalf("CountBookings() = %d, want %d", count, want)
	}
}

func TestRunWritesYAML(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "fixtures", "sample.yaml")

	if err := run(ctx, options{outPath: out, seed: 7}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	static, err := fixtures.LoadFile(ctx, out)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	bookings, err := static.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings() error = %v", err)
	}
	if want := fixtures.SampleBookings(7, fixtures.SampleParkings()); len(bookings) != len(want) {
		t.Fatalf("ListBookings() len = %d, want %d", len(bookings), len(want))
	}
}

func TestRunRequiresTarget(t *testing.T) {
	if err := run(context.Background(), options{seed: 1}); err == nil {
		t.Fatalf("run() error = nil without a target")
	}
}

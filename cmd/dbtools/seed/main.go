// cmd/dbtools/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/db"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/fixtures"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const seedTimeout = 2 * time.Minute

type options struct {
	dbPath      string
	postgresURL string
	outPath     string
	seed        uint64
}

func main() {
	var opts options
	flag.StringVar(&opts.dbPath, "db", "", "SQLite database to fill")
	flag.StringVar(&opts.postgresURL, "postgres", os.Getenv("DATABASE_URL"), "Postgres URL to fill (default: $DATABASE_URL)")
	flag.StringVar(&opts.outPath, "out", "", "Write the dataset to this YAML file instead of a database")
	flag.Uint64Var(&opts.seed, "seed", fixtures.DefaultSeed, "Random seed for the sample dataset")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	ctx = log.Logger.WithContext(ctx)

	if err := run(ctx, opts); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}

func run(ctx context.Context, opts options) error {
	parkings := fixtures.SampleParkings()
	bookings := fixtures.SampleBookings(opts.seed, parkings)
	logger := log.Ctx(ctx).With().
		Uint64("seed", opts.seed).
		Int("parkings", len(parkings)).
		Int("bookings", len(bookings)).
		Logger()

	if opts.outPath != "" {
		if err := fixtures.WriteFile(opts.outPath, parkings, bookings); err != nil {
			return err
		}
		logger.Info().Str("path", opts.outPath).Msg("Sample dataset written")
		return nil
	}

	seeder, closeFn, err := openSeeder(ctx, opts)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := seed(ctx, seeder, parkings, bookings); err != nil {
		return err
	}
	logger.Info().Msg("Sample dataset stored")
	return nil
}

func openSeeder(ctx context.Context, opts options) (db.Seeder, func(), error) {
	switch {
	case opts.dbPath != "":
		database, err := db.New(opts.dbPath)
		if err != nil {
			return nil, nil, err
		}
		return database, func() { _ = database.Close() }, nil
	case opts.postgresURL != "":
		store, err := db.NewPostgres(ctx, opts.postgresURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("one of -db, -postgres or -out is required")
	}
}

// seed replaces whatever the store holds with the sample dataset.
func seed(ctx context.Context, seeder db.Seeder, parkings []models.Parking, bookings []models.Booking) error {
	if err := seeder.ReplaceAll(ctx, parkings, bookings); err != nil {
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}

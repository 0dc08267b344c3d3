// internal/db/open.go
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/config"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/fixtures"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// Source serves bookings and parkings to the analytics engine.
type Source interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListParkings(ctx context.Context) ([]models.Parking, error)
	Close() error
}

// Seeder replaces the stored dataset.
type Seeder interface {
	ReplaceAll(ctx context.Context, parkings []models.Parking, bookings []models.Booking) error
}

type staticSource struct {
	*fixtures.Static
}

func (staticSource) Close() error { return nil }

// Open returns the booking source selected by cfg.Database.Driver.
func Open(ctx context.Context, cfg *config.Config) (Source, error) {
	logger := log.Ctx(ctx).With().
		Str("component", "db").
		Str("driver", cfg.Database.Driver).
		Logger()

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		database, err := NewFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.SeedSample {
			parkings := fixtures.SampleParkings()
			bookings := fixtures.SampleBookings(fixtures.DefaultSeed, parkings)
			if _, err := database.SeedIfEmpty(logger.WithContext(ctx), parkings, bookings); err != nil {
				database.Close()
				return nil, fmt.Errorf("error seeding database: %w", err)
			}
		}
		logger.Info().Str("filename", cfg.Database.Filename).Msg("Opened sqlite booking store")
		return database, nil

	case config.DriverPostgres:
		store, err := NewPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Opened postgres booking store")
		return store, nil

	case config.DriverFixtures:
		if cfg.Database.Fixtures == "" {
			logger.Info().Msg("Serving generated sample dataset")
			return staticSource{fixtures.NewSample(fixtures.DefaultSeed)}, nil
		}
		static, err := fixtures.LoadFile(logger.WithContext(ctx), cfg.Database.Fixtures)
		if err != nil {
			return nil, err
		}
		return staticSource{static}, nil

	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownDriver, cfg.Database.Driver)
	}
}

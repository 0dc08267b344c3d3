// Package fixtures provides in-memory booking and parking sources: a static
// snapshot, a YAML file loader, and a deterministic sample dataset.
package fixtures

import (
	"context"
	"sync"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// Static serves a fixed snapshot. It satisfies both analytics source
// interfaces and is safe for concurrent use.
type Static struct {
	mu       sync.RWMutex
	parkings []models.Parking
	bookings []models.Booking
}

func NewStatic(parkings []models.Parking, bookings []models.Booking) *Static {
	s := &Static{}
	s.Replace(parkings, bookings)
	return s
}

// Replace swaps the snapshot. Callers keep ownership of the slices they pass.
func (s *Static) Replace(parkings []models.Parking, bookings []models.Booking) {
	p := append([]models.Parking(nil), parkings...)
	b := append([]models.Booking(nil), bookings...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.parkings = p
	s.bookings = b
}

func (s *Static) ListBookings(ctx context.Context) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Booking(nil), s.bookings...), nil
}

func (s *Static) ListParkings(ctx context.Context) ([]models.Parking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Parking(nil), s.parkings...), nil
}

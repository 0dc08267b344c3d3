package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/analytics"
)

const reportSnapshotJobName = "report_snapshot"

// ReportBuilder produces report payloads; *analytics.Engine implements it.
type ReportBuilder interface {
	Report(ctx context.Context, q analytics.Query) (analytics.ReportData, error)
}

// Snapshot is a report computed by the scheduler.
type Snapshot struct {
	Report     analytics.ReportData `json:"report"`
	ComputedAt time.Time            `json:"computedAt"`
	Duration   time.Duration        `json:"durationNs"`
}

// SnapshotStore holds the most recent scheduled report. It is safe for
// concurrent use by the job and HTTP handlers.
type SnapshotStore struct {
	mu     sync.RWMutex
	latest *Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Latest returns the most recent snapshot and whether one exists.
func (s *SnapshotStore) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}

func (s *SnapshotStore) Store(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &snapshot
}

// RefreshSnapshot computes the report for filter and stores it. The previous
// snapshot is kept when the report cannot be built.
func RefreshSnapshot(ctx context.Context, builder ReportBuilder, store *SnapshotStore, filter analytics.RangeFilter) error {
	start := time.Now()
	report, err := builder.Report(ctx, analytics.Query{Filter: filter})
	if err != nil {
		return fmt.Errorf("build report snapshot: %w", err)
	}

	store.Store(Snapshot{
		Report:     report,
		ComputedAt: start,
		Duration:   time.Since(start),
	})
	log.Ctx(ctx).Info().
		Str("filter", string(filter)).
		Int("bookings", report.KPIs.TotalBookings).
		Float64("earnings", report.KPIs.TotalEarnings).
		Msg("Report snapshot refreshed")
	return nil
}

// RegisterReportJobs schedules the report snapshot on cronExpr. The first
// snapshot is computed as soon as the scheduler starts.
func RegisterReportJobs(svc *Service, builder ReportBuilder, store *SnapshotStore, cronExpr string, filter analytics.RangeFilter) (gocron.Job, error) {
	if builder == nil || store == nil {
		return nil, fmt.Errorf("report jobs require a report builder and snapshot store")
	}
	return svc.AddJob(reportSnapshotJobName, cronExpr, true, func(ctx context.Context) error {
		return RefreshSnapshot(ctx, builder, store, filter)
	})
}

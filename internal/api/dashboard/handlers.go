// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/analytics"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/api/apiutil"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/scheduler"
)

const dashboardQueryTimeout = 5 * time.Second

// Settings are the defaults applied when a request leaves a parameter out.
type Settings struct {
	DefaultFilter analytics.RangeFilter
	TopLimit      int
	RecentLimit   int
}

var (
	engine       *analytics.Engine
	snapshots    *scheduler.SnapshotStore
	settings     Settings
	handlersOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
// store may be nil when no report snapshot job runs.
func InitHandlers(e *analytics.Engine, store *scheduler.SnapshotStore, s Settings) {
	if e == nil {
		log.Warn().Msg("InitHandlers called with nil engine; dashboard handlers will be unavailable")
		return
	}
	handlersOnce.Do(func() {
		engine = e
		snapshots = store
		if s.DefaultFilter == "" {
			s.DefaultFilter = analytics.RangeAll
		}
		if s.RecentLimit <= 0 {
			s.RecentLimit = analytics.DefaultRecentBookings
		}
		settings = s
	})
}

// RegisterRoutes mounts the analytics endpoints on mux. reportMiddleware,
// when non-nil, wraps the on-demand report endpoint.
func RegisterRoutes(mux *http.ServeMux, reportMiddleware func(http.Handler) http.Handler) {
	report := http.Handler(http.HandlerFunc(HandleReport))
	if reportMiddleware != nil {
		report = reportMiddleware(report)
	}

	mux.HandleFunc("GET /health", HandleHealth)
	mux.HandleFunc("GET /api/v1/dashboard", HandleDashboard)
	mux.HandleFunc("GET /api/v1/parkings/stats", HandleParkingStats)
	mux.HandleFunc("GET /api/v1/parkings/top", HandleTopParkings)
	mux.HandleFunc("GET /api/v1/parkings/{id}/stats", HandleParkingDetail)
	mux.HandleFunc("GET /api/v1/bookings/recent", HandleRecentBookings)
	mux.Handle("GET /api/v1/reports", report)
	mux.HandleFunc("GET /api/v1/reports/latest", HandleLatestReport)
}

// kpiCard is a headline figure formatted the way the dashboard cards show it.
type kpiCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Growth string `json:"growth,omitempty"`
	Period string `json:"period"`
}

type dashboardResponse struct {
	analytics.Dashboard
	Cards []kpiCard `json:"cards"`
}

// HandleDashboard serves GET /api/v1/dashboard.
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	e, ok := loadEngine(w, r)
	if !ok {
		return
	}
	q, err := apiutil.AnalyticsQuery(r, settings.DefaultFilter)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	data, err := e.Dashboard(ctx, q)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load dashboard", Err: err})
		return
	}
	writeJSON(w, r, dashboardResponse{Dashboard: data, Cards: buildCards(data)})
}

func buildCards(d analytics.Dashboard) []kpiCard {
	return []kpiCard{
		{
			Title:  "Total Bookings",
			Value:  strconv.Itoa(d.KPIs.TotalBookings),
			Growth: analytics.FormatGrowth(d.KPIs.BookingsGrowth),
			Period: d.PeriodLabel,
		},
		{
			Title:  "Total Earnings",
			Value:  analytics.FormatCompactCurrency(d.KPIs.TotalEarnings),
			Growth: analytics.FormatGrowth(d.KPIs.EarningsGrowth),
			Period: d.PeriodLabel,
		},
		{
			Title:  "Cancellation Rate",
			Value:  analytics.FormatPercent(d.KPIs.CancellationRate),
			Period: d.PeriodLabel,
		},
	}
}

// HandleParkingStats serves GET /api/v1/parkings/stats.
func HandleParkingStats(w http.ResponseWriter, r *http.Request) {
	e, ok := loadEngine(w, r)
	if !ok {
		return
	}
	q, err := apiutil.AnalyticsQuery(r, settings.DefaultFilter)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	stats, err := e.ParkingStats(ctx, q)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load parking stats", Err: err})
		return
	}
	writeJSON(w, r, stats)
}

// HandleParkingDetail serves GET /api/v1/parkings/{id}/stats. An id that
// matches no parking yields zeroed stats named "Unknown".
func HandleParkingDetail(w http.ResponseWriter, r *http.Request) {
	e, ok := loadEngine(w, r)
	if !ok {
		return
	}
	q, err := apiutil.AnalyticsQuery(r, settings.DefaultFilter)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	q.ParkingID = strings.TrimSpace(r.PathValue("id"))
	if q.ParkingID == "" {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "id", Reason: "is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	stats, err := e.ParkingDetail(ctx, q)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load parking stats", Err: err})
		return
	}
	writeJSON(w, r, stats)
}

// HandleTopParkings serves GET /api/v1/parkings/top.
func HandleTopParkings(w http.ResponseWriter, r *http.Request) {
	e, ok := loadEngine(w, r)
	if !ok {
		return
	}
	q, err := apiutil.AnalyticsQuery(r, settings.DefaultFilter)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	limit, err := apiutil.ParseLimit(r, settings.TopLimit)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	top, err := e.TopParkings(ctx, q, limit)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load top parkings", Err: err})
		return
	}
	writeJSON(w, r, top)
}

// HandleRecentBookings serves GET /api/v1/bookings/recent. limit=0 returns
// every booking.
func HandleRecentBookings(w http.ResponseWriter, r *http.Request) {
	e, ok := loadEngine(w, r)
	if !ok {
		return
	}
	limit, err := apiutil.ParseLimit(r, settings.RecentLimit)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	bookings, err := e.Recent(ctx, limit)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load recent bookings", Err: err})
		return
	}
	writeJSON(w, r, bookings)
}

// HandleReport serves GET /api/v1/reports, computing the report on demand.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	e, ok := loadEngine(w, r)
	if !ok {
		return
	}
	q, err := apiutil.AnalyticsQuery(r, settings.DefaultFilter)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	report, err := e.Report(ctx, q)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to build report", Err: err})
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="`+report.FileName+`"`)
	writeJSON(w, r, report)
}

// HandleLatestReport serves GET /api/v1/reports/latest from the scheduled
// snapshot.
func HandleLatestReport(w http.ResponseWriter, r *http.Request) {
	if snapshots == nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Report snapshots are disabled"})
		return
	}
	snapshot, ok := snapshots.Latest()
	if !ok {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "No report snapshot yet"})
		return
	}
	w.Header().Set("Last-Modified", snapshot.ComputedAt.UTC().Format(http.TimeFormat))
	writeJSON(w, r, snapshot)
}

// HandleHealth serves GET /health.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if engine == nil {
		status = "starting"
		code = http.StatusServiceUnavailable
	}
	if err := apiutil.WriteJSON(w, code, map[string]string{"status": status}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to write response")
	}
}

func loadEngine(w http.ResponseWriter, r *http.Request) (*analytics.Engine, bool) {
	e := engine
	if e == nil {
		log.Ctx(r.Context()).Error().Msg("Analytics engine not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusServiceUnavailable, Message: "Analytics engine not initialized"})
		return nil, false
	}
	return e, true
}

package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/analytics"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 5},
		{query: "limit=3", want: 3},
		{query: "limit=0", want: 0},
		{query: "limit=-1", wantErr: true},
		{query: "limit=ten", wantErr: true},
	}
	for _, test := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+test.query, nil)
		got, err := ParseLimit(req, 5)
		if (err != nil) != test.wantErr {
			t.Fatalf("ParseLimit(%q) error = %v, wantErr %v", test.query, err, test.wantErr)
		}
		if !test.wantErr && got != test.want {
			t.Fatalf("ParseLimit(%q) = %d, want %d", test.query, got, test.want)
		}
	}
}

func TestAnalyticsQuery(t *testing.T) {
	t.Run("default_filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?parking=park-002", nil)
		q, err := AnalyticsQuery(req, analytics.RangeLastMonth)
		if err != nil {
			t.Fatalf("AnalyticsQuery() error = %v", err)
		}
		if q.Filter != analytics.RangeLastMonth || q.ParkingID != "park-002" {
			t.Fatalf("AnalyticsQuery() = %+v", q)
		}
	})

	t.Run("unknown_token_means_all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?range=fortnight&start=garbage", nil)
		q, err := AnalyticsQuery(req, analytics.RangeLastMonth)
		if err != nil {
			t.Fatalf("AnalyticsQuery() error = %v", err)
		}
		if q.Filter != analytics.RangeAll || q.CustomStart != nil {
			t.Fatalf("AnalyticsQuery() = %+v, want all time", q)
		}
	})

	t.Run("custom_dates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?range=custom&start=2025-11-01&end=2025-11-30", nil)
		q, err := AnalyticsQuery(req, analytics.RangeAll)
		if err != nil {
			t.Fatalf("AnalyticsQuery() error = %v", err)
		}
		wantStart := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local)
		wantEnd := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.Local).Add(-time.Millisecond)
		if q.CustomStart == nil || !q.CustomStart.Equal(wantStart) {
			t.Fatalf("CustomStart = %v, want %v", q.CustomStart, wantStart)
		}
		if q.CustomEnd == nil || !q.CustomEnd.Equal(wantEnd) {
			t.Fatalf("CustomEnd = %v, want %v", q.CustomEnd, wantEnd)
		}
	})

	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{name: "malformed_start", query: "range=custom&start=11/01/2025&end=2025-11-30", wantField: "start"},
		{name: "malformed_end", query: "range=custom&start=2025-11-01&end=soon", wantField: "end"},
		{name: "reversed", query: "range=custom&start=2025-11-30&end=2025-11-01", wantField: "end"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+test.query, nil)
			_, err := AnalyticsQuery(req, analytics.RangeAll)
			var fieldErr FieldError
			if !errors.As(err, &fieldErr) || fieldErr.Field != test.wantField {
				t.Fatalf("AnalyticsQuery() error = %v, want field error on %q", err, test.wantField)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "field", err: FieldError{Field: "limit", Reason: "must be 0 or greater"}, wantStatus: http.StatusBadRequest, wantBody: "limit must be 0 or greater"},
		{name: "handler", err: HandlerError{Status: http.StatusNotFound, Message: "No report snapshot yet"}, wantStatus: http.StatusNotFound, wantBody: "No report snapshot yet"},
		{name: "internal", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantBody: "Internal Server Error"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			recorder := httptest.NewRecorder()
			WriteError(recorder, req, test.err)

			if recorder.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d", recorder.Code, test.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error != test.wantBody {
				t.Fatalf("error = %q, want %q", resp.Error, test.wantBody)
			}
		})
	}
}

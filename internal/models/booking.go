// internal/models/booking.go
package models

import (
	"strings"
	"time"
)

// PreBookedLeadTime is how far ahead of its start an on-app reservation is created.
const PreBookedLeadTime = 12 * time.Hour

type BookingType string

const (
	BookingTypePreBooked BookingType = "prebooked"
	BookingTypeOnSite    BookingType = "onsite"
)

// ParseBookingType accepts the stored values as well as the upper-case enum names.
func ParseBookingType(s string) (BookingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(BookingTypePreBooked), "pre_booked", "onapp", "on_app":
		return BookingTypePreBooked, true
	case string(BookingTypeOnSite), "on_site":
		return BookingTypeOnSite, true
	default:
		return "", false
	}
}

func (t BookingType) Label() string {
	switch t {
	case BookingTypePreBooked:
		return "On-App"
	case BookingTypeOnSite:
		return "On-Site"
	default:
		return "Unknown"
	}
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status in reporting order.
var BookingStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusActive,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(BookingStatusConfirmed):
		return BookingStatusConfirmed, true
	case string(BookingStatusActive):
		return BookingStatusActive, true
	case string(BookingStatusCompleted):
		return BookingStatusCompleted, true
	case string(BookingStatusCancelled), "canceled":
		return BookingStatusCancelled, true
	default:
		return "", false
	}
}

func (s BookingStatus) Label() string {
	switch s {
	case BookingStatusConfirmed:
		return "Confirmed"
	case BookingStatusActive:
		return "Active"
	case BookingStatusCompleted:
		return "Completed"
	case BookingStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

type VehicleType string

const (
	VehicleTwoWheeler  VehicleType = "two_wheeler"
	VehicleFourWheeler VehicleType = "four_wheeler"
)

type Booking struct {
	ID            string        `json:"id"`
	ParkingID     string        `json:"parkingId"`
	UserName      string        `json:"userName"`
	VehicleNumber string        `json:"vehicleNumber"`
	VehicleType   VehicleType   `json:"vehicleType,omitempty"`
	BookingType   BookingType   `json:"bookingType"`
	Status        BookingStatus `json:"status"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	Amount        Amount        `json:"amount"`
	Duration      int           `json:"duration"`
	CreatedAt     time.Time     `json:"createdAt"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
}

// IsCancelled reports whether the booking is excluded from revenue.
func (b Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// HasStartTime is false when the start time could not be parsed at ingestion.
func (b Booking) HasStartTime() bool {
	return !b.StartTime.IsZero()
}

type Parking struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Capacity     int     `json:"capacity"`
	PricePerHour float64 `json:"pricePerHour"`
}

// NewBooking derives EndTime, Amount, CreatedAt and CancelledAt the way the
// booking source stamps them at creation time.
func NewBooking(id string, parking Parking, userName, vehicleNumber string, vehicle VehicleType, bookingType BookingType, status BookingStatus, start time.Time, durationHours int) Booking {
	createdAt := start
	if bookingType == BookingTypePreBooked {
		createdAt = start.Add(-PreBookedLeadTime)
	}

	b := Booking{
		ID:            id,
		ParkingID:     parking.ID,
		UserName:      userName,
		VehicleNumber: vehicleNumber,
		VehicleType:   vehicle,
		BookingType:   bookingType,
		Status:        status,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(durationHours) * time.Hour),
		Amount:        Amount(parking.PricePerHour * float64(durationHours)),
		Duration:      durationHours,
		CreatedAt:     createdAt,
	}
	if status == BookingStatusCancelled {
		cancelledAt := start.Add(-time.Hour)
		b.CancelledAt = &cancelledAt
	}
	return b
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats booking sources emit. Values
// without an offset are read as local wall-clock time. On failure it returns
// the zero time and false.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, time.Local)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

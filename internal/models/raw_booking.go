package models

import "strings"

// RawBooking is a booking as file and database sources hold it: enums and
// timestamps as text. Empty strings mean the value is missing.
type RawBooking struct {
	ID            string
	ParkingID     string
	UserName      string
	VehicleNumber string
	VehicleType   string
	BookingType   string
	Status        string
	StartTime     string
	EndTime       string
	Amount        Amount
	Duration      int
	CreatedAt     string
	CancelledAt   string
}

// Field names reported by RawBooking.Normalize.
const (
	FieldBookingType = "booking_type"
	FieldStatus      = "status"
	FieldStartTime   = "start_time"
)

// Normalize converts r into a Booking. It never fails: an unknown booking
// type or status is kept as lower-case text and an unparsable start time
// becomes the zero time. The names of fields that fell back are returned so
// the caller can log them.
func (r RawBooking) Normalize() (Booking, []string) {
	b := Booking{
		ID:            r.ID,
		ParkingID:     r.ParkingID,
		UserName:      r.UserName,
		VehicleNumber: r.VehicleNumber,
		VehicleType:   VehicleType(strings.ToLower(strings.TrimSpace(r.VehicleType))),
		Amount:        r.Amount,
		Duration:      r.Duration,
	}

	var problems []string
	if t, ok := ParseBookingType(r.BookingType); ok {
		b.BookingType = t
	} else {
		b.BookingType = BookingType(strings.ToLower(strings.TrimSpace(r.BookingType)))
		problems = append(problems, FieldBookingType)
	}
	if s, ok := ParseBookingStatus(r.Status); ok {
		b.Status = s
	} else {
		b.Status = BookingStatus(strings.ToLower(strings.TrimSpace(r.Status)))
		problems = append(problems, FieldStatus)
	}
	if t, ok := ParseTimestamp(r.StartTime); ok {
		b.StartTime = t
	} else {
		problems = append(problems, FieldStartTime)
	}

	b.EndTime, _ = ParseTimestamp(r.EndTime)
	b.CreatedAt, _ = ParseTimestamp(r.CreatedAt)
	if t, ok := ParseTimestamp(r.CancelledAt); ok {
		b.CancelledAt = &t
	}
	return b, problems
}

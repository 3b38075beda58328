package model

import "time"

// Booking status values.  A booking starts as pending, moves to
// confirmed, and terminates in completed, cancelled or no_show.
// Terminal states have no transitions out of them.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingNoShow    = "no_show"
)

// Booking records a customer's claim on a table for a given date,
// time and party size.  Date, time and party size are immutable once
// the booking is created; only the status and the table assignment
// may change afterwards.  This struct corresponds to a row in the
// `bookings` table.
//
// Fields:
//  ID              – primary key identifier.
//  RestaurantID    – restaurant being booked.
//  TableID         – assigned table (nil when unassigned).
//  CustomerID      – user who placed the booking.
//  Date            – service date as "YYYY-MM-DD".
//  Time            – slot start time as "HH:MM".
//  PartySize       – number of guests.
//  Status          – one of the Booking* constants above.
//  SpecialRequests – optional free-text notes from the customer.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	RestaurantID    uint64    // bookings.restaurant_id
	TableID         *uint64   // bookings.table_id (nullable)
	CustomerID      uint64    // bookings.customer_id
	Date            string    // bookings.date
	Time            string    // bookings.time
	PartySize       uint32    // bookings.party_size
	Status          string    // bookings.status
	SpecialRequests string    // bookings.special_requests
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// TerminalBookingStatus reports whether a status permits no further
// transitions.
func TerminalBookingStatus(s string) bool {
	switch s {
	case BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrDuplicateSlot signals that the storage
// layer rejected a booking because its table/date/time combination
// is already claimed.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a table that still has active bookings. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrRestaurantNotFound is returned when a restaurant lookup yields
// no rows.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrTableNotFound is returned when a table lookup yields no rows.
var ErrTableNotFound = errors.New("table not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicateSlot is returned when inserting a booking violates the
// unique (table_id, date, time) key. Availability checks are advisory,
// so a concurrent booking can claim the same table between the check
// and the insert; the unique key is the final arbiter and this error
// is the normal outcome of losing that race, not a server fault.
var ErrDuplicateSlot = errors.New("table already booked for this slot")

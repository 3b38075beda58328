// Package availability decides whether a restaurant can seat a party at
// a given date and time slot. The check reads tables and active
// bookings and picks the smallest table that fits; it takes no locks,
// so its answer is advisory: a concurrent booking can claim the same
// table between this check and the caller's insert. The storage
// layer's unique key on (table_id, date, time) settles such races and
// the booking service reports them as an unavailable slot.
package availability

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/schedule"
)

// ErrNoTable is returned when no table with sufficient capacity is free
// at the requested slot.
var ErrNoTable = errors.New("no table available for this slot")

// TableLister yields the tables of a restaurant that can seat at least
// partySize guests, ordered ascending by capacity.
type TableLister interface {
	ListWithCapacity(ctx context.Context, restaurantID uint64, partySize uint32) ([]model.Table, error)
}

// BookingReader yields the table IDs already claimed at a slot by
// bookings in pending or confirmed status.
type BookingReader interface {
	BookedTableIDs(ctx context.Context, restaurantID uint64, date, timeOfDay string) ([]uint64, error)
}

// HoursReader yields a restaurant's opening hours for one weekday.
// Implementations return sql.ErrNoRows when no hours are recorded.
type HoursReader interface {
	GetHoursForDay(ctx context.Context, restaurantID uint64, day string) (*model.RestaurantHours, error)
}

// Checker combines the table, booking and hours lookups needed to
// answer availability questions.
type Checker struct {
	tables   TableLister
	bookings BookingReader
	hours    HoursReader
}

// NewChecker constructs a Checker. All dependencies must be non-nil.
func NewChecker(tables TableLister, bookings BookingReader, hours HoursReader) *Checker {
	if tables == nil || bookings == nil || hours == nil {
		panic("nil dependency passed to availability.NewChecker")
	}
	return &Checker{tables: tables, bookings: bookings, hours: hours}
}

// FindTable returns the smallest free table able to seat partySize
// guests at the given slot, or ErrNoTable when every qualifying table
// is already claimed by a pending or confirmed booking.
func (c *Checker) FindTable(ctx context.Context, restaurantID uint64, date, timeOfDay string, partySize uint32) (*model.Table, error) {
	candidates, err := c.tables.ListWithCapacity(ctx, restaurantID, partySize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoTable
	}
	bookedIDs, err := c.bookings.BookedTableIDs(ctx, restaurantID, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	booked := make(map[uint64]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}
	for i := range candidates {
		if _, taken := booked[candidates[i].ID]; !taken {
			return &candidates[i], nil
		}
	}
	return nil, ErrNoTable
}

// IsAvailable reports whether any qualifying table is free at the slot.
func (c *Checker) IsAvailable(ctx context.Context, restaurantID uint64, date, timeOfDay string, partySize uint32) (bool, error) {
	_, err := c.FindTable(ctx, restaurantID, date, timeOfDay, partySize)
	if errors.Is(err, ErrNoTable) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AvailableTimes returns the bookable start times of a restaurant on a
// date, derived from its opening hours for that weekday at the default
// interval. Days the restaurant is closed, or has no hours recorded
// for, yield an empty list. The date must be "YYYY-MM-DD".
func (c *Checker) AvailableTimes(ctx context.Context, restaurantID uint64, date string) ([]string, error) {
	day, err := schedule.DayOfWeek(date)
	if err != nil {
		return nil, err
	}
	hours, err := c.hours.GetHoursForDay(ctx, restaurantID, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []string{}, nil
		}
		return nil, err
	}
	if hours.IsClosed {
		return []string{}, nil
	}
	return schedule.Slots(hours.OpenTime, hours.CloseTime, schedule.DefaultIntervalMin), nil
}

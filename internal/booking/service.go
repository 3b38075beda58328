// Package booking implements the booking lifecycle: creation with an
// advisory availability check, confirmation, and customer-initiated
// cancellation. Status moves pending -> confirmed -> one of completed,
// cancelled or no_show; terminal states have no exits.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/availability"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// ErrSlotUnavailable is returned when no table of sufficient capacity is
// free at the requested slot, whether discovered by the advisory check
// before the insert or by the storage unique key afterwards.
var ErrSlotUnavailable = errors.New("no table available for the requested slot")

// ErrInvalidRequest is returned when a create request carries a
// malformed date or time or a party size below one.
var ErrInvalidRequest = errors.New("invalid booking request")

// Store is the persistence surface the service drives. Create must
// insert and optionally confirm atomically.
type Store interface {
	Create(ctx context.Context, b *model.Booking, confirm bool) error
	Confirm(ctx context.Context, id uint64) error
	CancelByCustomer(ctx context.Context, id, customerID uint64) error
}

// TableFinder answers the advisory availability question before an
// insert. repository errors pass through; a missing table is
// availability.ErrNoTable.
type TableFinder interface {
	FindTable(ctx context.Context, restaurantID uint64, date, timeOfDay string, partySize uint32) (*model.Table, error)
}

// Publisher delivers a booking-confirmed event to the broker.
// Failures are logged and ignored; messaging never blocks a booking.
type Publisher func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// Service coordinates booking creation and status transitions.
//
// AutoConfirm is a named policy, not an accident: when true (the
// default) every new booking is confirmed immediately with no separate
// restaurant-side approval step; when false bookings stay pending until
// a later Confirm call. Either setting is covered by tests.
type Service struct {
	store       Store
	finder      TableFinder
	autoConfirm bool
	publish     Publisher // may be nil when messaging is disabled
}

// NewService constructs a Service. store and finder must be non-nil;
// publish may be nil to disable event publication.
func NewService(store Store, finder TableFinder, autoConfirm bool, publish Publisher) *Service {
	if store == nil || finder == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{store: store, finder: finder, autoConfirm: autoConfirm, publish: publish}
}

// CreateRequest carries the customer-supplied fields of a new booking.
// Date, time and party size become immutable once the booking exists.
type CreateRequest struct {
	RestaurantID    uint64
	Date            string // "YYYY-MM-DD"
	Time            string // "HH:MM"
	PartySize       uint32
	SpecialRequests string
}

// Create places a booking for the authenticated customer. It validates
// the request, runs the advisory availability check to pick the
// smallest free table, and inserts the booking; under the auto-confirm
// policy the booking is confirmed in the same transaction. A lost race
// on the table (unique key violation) surfaces as ErrSlotUnavailable,
// the same outcome as a slot that was never free.
func (s *Service) Create(ctx context.Context, customerID uint64, req CreateRequest) (*model.Booking, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tbl, err := s.finder.FindTable(ctx, req.RestaurantID, req.Date, req.Time, req.PartySize)
	if err != nil {
		if errors.Is(err, availability.ErrNoTable) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	b := &model.Booking{
		RestaurantID:    req.RestaurantID,
		TableID:         &tbl.ID,
		CustomerID:      customerID,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
	}
	if err := s.store.Create(ctx, b, s.autoConfirm); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	if b.Status == model.BookingConfirmed && s.publish != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:    b.ID,
			RestaurantID: b.RestaurantID,
			CustomerID:   b.CustomerID,
			TableID:      tbl.ID,
			Date:         b.Date,
			Time:         b.Time,
			PartySize:    b.PartySize,
			ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("booking: publish confirmed event failed for booking %d: %v", b.ID, err)
		}
	}
	return b, nil
}

// Confirm sets a booking to confirmed regardless of its prior status;
// confirming twice is a no-op. Exposed for the manual-approval flow
// when the auto-confirm policy is off.
func (s *Service) Confirm(ctx context.Context, bookingID uint64) error {
	return s.store.Confirm(ctx, bookingID)
}

// Cancel marks a booking cancelled on behalf of its owning customer.
// The store enforces ownership and the terminal-status guard; a second
// cancel of the same booking fails with repository.ErrConflict.
func (s *Service) Cancel(ctx context.Context, bookingID, customerID uint64) error {
	return s.store.CancelByCustomer(ctx, bookingID, customerID)
}

func validate(req CreateRequest) error {
	if req.RestaurantID == 0 {
		return fmt.Errorf("%w: restaurant id is required", ErrInvalidRequest)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidRequest)
	}
	if req.PartySize < 1 {
		return fmt.Errorf("%w: party size must be at least 1", ErrInvalidRequest)
	}
	return nil
}

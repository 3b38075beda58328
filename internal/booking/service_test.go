package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/restaurant-table-booking/internal/availability"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// fakeStore keeps bookings in a map and mirrors the repository's
// guarded-update semantics for cancellation.
type fakeStore struct {
	nextID    uint64
	bookings  map[uint64]*model.Booking
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, bookings: map[uint64]*model.Booking{}}
}

func (f *fakeStore) Create(_ context.Context, b *model.Booking, confirm bool) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = f.nextID
	f.nextID++
	b.Status = model.BookingPending
	if confirm {
		b.Status = model.BookingConfirmed
	}
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeStore) Confirm(_ context.Context, id uint64) error {
	b, ok := f.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.Status = model.BookingConfirmed
	return nil
}

func (f *fakeStore) CancelByCustomer(_ context.Context, id, customerID uint64) error {
	b, ok := f.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	if b.CustomerID != customerID {
		return repository.ErrForbidden
	}
	if model.TerminalBookingStatus(b.Status) {
		return repository.ErrConflict
	}
	b.Status = model.BookingCancelled
	return nil
}

// fakeFinder returns a fixed table or availability.ErrNoTable.
type fakeFinder struct {
	table *model.Table
}

func (f *fakeFinder) FindTable(_ context.Context, _ uint64, _, _ string, _ uint32) (*model.Table, error) {
	if f.table == nil {
		return nil, availability.ErrNoTable
	}
	return f.table, nil
}

func validReq() CreateRequest {
	return CreateRequest{
		RestaurantID: 7,
		Date:         "2025-06-15",
		Time:         "19:00",
		PartySize:    2,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("AutoConfirmOn", func(t *testing.T) {
		store := newFakeStore()
		finder := &fakeFinder{table: &model.Table{ID: 3, Capacity: 4}}
		var published []queue.BookingConfirmedEvent
		svc := NewService(store, finder, true, func(_ context.Context, ev queue.BookingConfirmedEvent) error {
			published = append(published, ev)
			return nil
		})

		b, err := svc.Create(ctx, 42, validReq())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if b.Status != model.BookingConfirmed {
			t.Errorf("status = %q, want confirmed under auto-confirm policy", b.Status)
		}
		if b.TableID == nil || *b.TableID != 3 {
			t.Errorf("table not assigned from availability check: %+v", b.TableID)
		}
		if len(published) != 1 || published[0].BookingID != b.ID {
			t.Errorf("expected one confirmed event for booking %d, got %+v", b.ID, published)
		}
	})

	t.Run("AutoConfirmOff", func(t *testing.T) {
		store := newFakeStore()
		finder := &fakeFinder{table: &model.Table{ID: 3, Capacity: 4}}
		var published int
		svc := NewService(store, finder, false, func(_ context.Context, _ queue.BookingConfirmedEvent) error {
			published++
			return nil
		})

		b, err := svc.Create(ctx, 42, validReq())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if b.Status != model.BookingPending {
			t.Errorf("status = %q, want pending when auto-confirm is off", b.Status)
		}
		if published != 0 {
			t.Errorf("no event should be published for a pending booking, got %d", published)
		}
	})

	t.Run("SlotUnavailable", func(t *testing.T) {
		svc := NewService(newFakeStore(), &fakeFinder{}, true, nil)
		if _, err := svc.Create(ctx, 42, validReq()); !errors.Is(err, ErrSlotUnavailable) {
			t.Errorf("expected ErrSlotUnavailable, got %v", err)
		}
	})

	t.Run("LostRaceOnInsert", func(t *testing.T) {
		store := newFakeStore()
		store.createErr = repository.ErrDuplicateSlot
		svc := NewService(store, &fakeFinder{table: &model.Table{ID: 3}}, true, nil)
		if _, err := svc.Create(ctx, 42, validReq()); !errors.Is(err, ErrSlotUnavailable) {
			t.Errorf("unique-key race should surface as ErrSlotUnavailable, got %v", err)
		}
	})

	t.Run("PublishFailureDoesNotFailBooking", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store, &fakeFinder{table: &model.Table{ID: 3}}, true,
			func(_ context.Context, _ queue.BookingConfirmedEvent) error {
				return errors.New("broker down")
			})
		b, err := svc.Create(ctx, 42, validReq())
		if err != nil {
			t.Fatalf("Create should succeed despite publish failure: %v", err)
		}
		if b.Status != model.BookingConfirmed {
			t.Errorf("status = %q, want confirmed", b.Status)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewService(newFakeStore(), &fakeFinder{table: &model.Table{ID: 3}}, true, nil)
		bad := []CreateRequest{
			{RestaurantID: 0, Date: "2025-06-15", Time: "19:00", PartySize: 2},
			{RestaurantID: 7, Date: "15/06/2025", Time: "19:00", PartySize: 2},
			{RestaurantID: 7, Date: "2025-06-15", Time: "7pm", PartySize: 2},
			{RestaurantID: 7, Date: "2025-06-15", Time: "19:00", PartySize: 0},
		}
		for i, req := range bad {
			if _, err := svc.Create(ctx, 42, req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("case %d: expected ErrInvalidRequest, got %v", i, err)
			}
		}
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, &fakeFinder{table: &model.Table{ID: 3}}, true, nil)

	owned, err := svc.Create(ctx, 42, validReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("OtherUsersBooking", func(t *testing.T) {
		if err := svc.Cancel(ctx, owned.ID, 99); !errors.Is(err, repository.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
		if store.bookings[owned.ID].Status != model.BookingConfirmed {
			t.Errorf("status changed by a forbidden cancel: %q", store.bookings[owned.ID].Status)
		}
	})

	t.Run("OwnBooking", func(t *testing.T) {
		if err := svc.Cancel(ctx, owned.ID, 42); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if store.bookings[owned.ID].Status != model.BookingCancelled {
			t.Errorf("status = %q, want cancelled", store.bookings[owned.ID].Status)
		}
	})

	t.Run("SecondCancelIsTerminal", func(t *testing.T) {
		// cancelled is terminal, so a repeat cancel is a no-op failure.
		if err := svc.Cancel(ctx, owned.ID, 42); !errors.Is(err, repository.ErrConflict) {
			t.Errorf("expected ErrConflict on repeat cancel, got %v", err)
		}
		if store.bookings[owned.ID].Status != model.BookingCancelled {
			t.Errorf("status = %q, want cancelled to remain", store.bookings[owned.ID].Status)
		}
	})

	t.Run("MissingBooking", func(t *testing.T) {
		if err := svc.Cancel(ctx, 9999, 42); !errors.Is(err, repository.ErrBookingNotFound) {
			t.Errorf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestConfirmIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, &fakeFinder{table: &model.Table{ID: 3}}, false, nil)

	b, err := svc.Create(ctx, 42, validReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Confirm(ctx, b.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if store.bookings[b.ID].Status != model.BookingConfirmed {
		t.Fatalf("status = %q, want confirmed", store.bookings[b.ID].Status)
	}
	// Confirming an already-confirmed booking is a state-wise no-op.
	if err := svc.Confirm(ctx, b.ID); err != nil {
		t.Errorf("second Confirm should succeed, got %v", err)
	}
	if store.bookings[b.ID].Status != model.BookingConfirmed {
		t.Errorf("status = %q after repeat confirm, want confirmed", store.bookings[b.ID].Status)
	}
}

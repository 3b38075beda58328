package availability

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// fakeStore satisfies TableLister, BookingReader and HoursReader from
// in-memory data so the checker can be exercised without a database.
type fakeStore struct {
	tables []model.Table
	booked map[string][]uint64 // "date time" -> table IDs
	hours  map[string]*model.RestaurantHours
}

func (f *fakeStore) ListWithCapacity(_ context.Context, _ uint64, partySize uint32) ([]model.Table, error) {
	out := []model.Table{}
	for _, t := range f.tables {
		if t.Capacity >= partySize {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) BookedTableIDs(_ context.Context, _ uint64, date, timeOfDay string) ([]uint64, error) {
	return f.booked[date+" "+timeOfDay], nil
}

func (f *fakeStore) GetHoursForDay(_ context.Context, _ uint64, day string) (*model.RestaurantHours, error) {
	h, ok := f.hours[day]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return h, nil
}

func TestFindTable(t *testing.T) {
	store := &fakeStore{
		tables: []model.Table{
			{ID: 1, Capacity: 2},
			{ID: 2, Capacity: 4},
			{ID: 3, Capacity: 8},
		},
		booked: map[string][]uint64{},
	}
	c := NewChecker(store, store, store)
	ctx := context.Background()

	t.Run("SmallestSufficientTablePreferred", func(t *testing.T) {
		tbl, err := c.FindTable(ctx, 7, "2025-06-15", "19:00", 3)
		if err != nil {
			t.Fatalf("FindTable: %v", err)
		}
		if tbl.ID != 2 {
			t.Errorf("got table %d, want smallest sufficient table 2", tbl.ID)
		}
	})

	t.Run("BookedTableSkipped", func(t *testing.T) {
		store.booked["2025-06-15 19:00"] = []uint64{2}
		tbl, err := c.FindTable(ctx, 7, "2025-06-15", "19:00", 3)
		if err != nil {
			t.Fatalf("FindTable: %v", err)
		}
		if tbl.ID != 3 {
			t.Errorf("got table %d, want next larger table 3", tbl.ID)
		}
	})

	t.Run("NoCapacity", func(t *testing.T) {
		if _, err := c.FindTable(ctx, 7, "2025-06-15", "19:00", 20); !errors.Is(err, ErrNoTable) {
			t.Errorf("expected ErrNoTable for oversized party, got %v", err)
		}
	})
}

func TestFindTableConflictingBooking(t *testing.T) {
	// One table of capacity 4 with a confirmed booking at 19:00: no
	// availability at 19:00, but the same table is free at 19:30.
	store := &fakeStore{
		tables: []model.Table{{ID: 1, Capacity: 4}},
		booked: map[string][]uint64{"2025-06-15 19:00": {1}},
	}
	c := NewChecker(store, store, store)
	ctx := context.Background()

	if _, err := c.FindTable(ctx, 7, "2025-06-15", "19:00", 2); !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable at booked slot, got %v", err)
	}
	tbl, err := c.FindTable(ctx, 7, "2025-06-15", "19:30", 2)
	if err != nil {
		t.Fatalf("FindTable at free slot: %v", err)
	}
	if tbl.ID != 1 {
		t.Errorf("got table %d, want 1", tbl.ID)
	}

	ok, err := c.IsAvailable(ctx, 7, "2025-06-15", "19:00", 2)
	if err != nil || ok {
		t.Errorf("IsAvailable at booked slot = (%v, %v), want (false, nil)", ok, err)
	}
	ok, err = c.IsAvailable(ctx, 7, "2025-06-15", "19:30", 2)
	if err != nil || !ok {
		t.Errorf("IsAvailable at free slot = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestAvailableTimes(t *testing.T) {
	store := &fakeStore{
		tables: []model.Table{{ID: 1, Capacity: 4}},
		booked: map[string][]uint64{},
		hours: map[string]*model.RestaurantHours{
			"sunday": {Day: "sunday", OpenTime: "09:00", CloseTime: "17:00"},
			"monday": {Day: "monday", IsClosed: true},
		},
	}
	c := NewChecker(store, store, store)
	ctx := context.Background()

	t.Run("OpenDay", func(t *testing.T) {
		got, err := c.AvailableTimes(ctx, 7, "2025-06-15") // a sunday
		if err != nil {
			t.Fatalf("AvailableTimes: %v", err)
		}
		if len(got) != 16 || got[0] != "09:00" || got[len(got)-1] != "16:30" {
			t.Errorf("unexpected slots: %v", got)
		}
	})

	t.Run("ClosedDay", func(t *testing.T) {
		got, err := c.AvailableTimes(ctx, 7, "2025-06-16") // a monday, closed
		if err != nil {
			t.Fatalf("AvailableTimes: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("closed day should have no slots, got %v", got)
		}
	})

	t.Run("NoHoursRecorded", func(t *testing.T) {
		got, err := c.AvailableTimes(ctx, 7, "2025-06-17") // a tuesday, no row
		if err != nil {
			t.Fatalf("AvailableTimes: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("day without hours should have no slots, got %v", got)
		}
	})

	t.Run("BadDate", func(t *testing.T) {
		if _, err := c.AvailableTimes(ctx, 7, "June 15"); err == nil {
			t.Error("expected error for malformed date")
		}
	})
}

package schedule

import (
	"testing"
)

func TestSlots(t *testing.T) {
	t.Run("FullServiceDay", func(t *testing.T) {
		got := Slots("09:00", "17:00", 30)
		if len(got) != 16 {
			t.Fatalf("expected 16 slots, got %d: %v", len(got), got)
		}
		if got[0] != "09:00" {
			t.Errorf("first slot = %q, want 09:00", got[0])
		}
		if got[len(got)-1] != "16:30" {
			t.Errorf("last slot = %q, want 16:30", got[len(got)-1])
		}
	})

	t.Run("StrictlyIncreasingUniformInterval", func(t *testing.T) {
		got := Slots("11:15", "14:00", 45)
		if len(got) == 0 {
			t.Fatal("expected slots, got none")
		}
		prev := -1
		for _, s := range got {
			m, err := parseClock(s)
			if err != nil {
				t.Fatalf("slot %q did not parse: %v", s, err)
			}
			if prev >= 0 && m-prev != 45 {
				t.Errorf("interval between slots = %d minutes, want 45", m-prev)
			}
			if m <= prev {
				t.Errorf("slots are not strictly increasing at %q", s)
			}
			prev = m
		}
		if last, _ := parseClock(got[len(got)-1]); last >= 14*60 {
			t.Errorf("last slot %q is not before closing time", got[len(got)-1])
		}
	})

	t.Run("ClosingExcluded", func(t *testing.T) {
		got := Slots("18:00", "19:00", 30)
		for _, s := range got {
			if s == "19:00" {
				t.Error("closing time itself must not be a slot")
			}
		}
		if len(got) != 2 {
			t.Errorf("expected 2 slots, got %v", got)
		}
	})

	t.Run("ClosedDay", func(t *testing.T) {
		if got := Slots("17:00", "09:00", 30); len(got) != 0 {
			t.Errorf("inverted hours should yield no slots, got %v", got)
		}
		if got := Slots("12:00", "12:00", 30); len(got) != 0 {
			t.Errorf("equal hours should yield no slots, got %v", got)
		}
	})

	t.Run("MalformedInput", func(t *testing.T) {
		if got := Slots("nine", "17:00", 30); len(got) != 0 {
			t.Errorf("malformed open time should yield no slots, got %v", got)
		}
		if got := Slots("09:00", "25:00", 30); len(got) != 0 {
			t.Errorf("out of range close time should yield no slots, got %v", got)
		}
	})

	t.Run("DefaultInterval", func(t *testing.T) {
		got := Slots("09:00", "10:00", 0)
		if len(got) != 2 || got[0] != "09:00" || got[1] != "09:30" {
			t.Errorf("zero interval should fall back to %d minutes, got %v", DefaultIntervalMin, got)
		}
	})
}

func TestDayOfWeek(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-06-15", "sunday"},
		{"2025-06-16", "monday"},
		{"2024-02-29", "thursday"}, // leap day
	}
	for _, c := range cases {
		got, err := DayOfWeek(c.date)
		if err != nil {
			t.Fatalf("DayOfWeek(%q) returned error: %v", c.date, err)
		}
		if got != c.want {
			t.Errorf("DayOfWeek(%q) = %q, want %q", c.date, got, c.want)
		}
	}
	if _, err := DayOfWeek("15/06/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

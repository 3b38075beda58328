package handler

import (
	"reflect"
	"testing"
)

func TestCuisineRoundTrip(t *testing.T) {
	t.Run("Join", func(t *testing.T) {
		got := joinCuisine([]string{" Italian", "PIZZA ", "", "  "})
		if got != "italian,pizza" {
			t.Errorf("joinCuisine = %q, want %q", got, "italian,pizza")
		}
	})
	t.Run("Split", func(t *testing.T) {
		got := splitCuisine("italian, pizza,,seafood")
		want := []string{"italian", "pizza", "seafood"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("splitCuisine = %v, want %v", got, want)
		}
	})
	t.Run("EmptySplitsToEmptySlice", func(t *testing.T) {
		if got := splitCuisine(""); len(got) != 0 {
			t.Errorf("splitCuisine(\"\") = %v, want empty", got)
		}
	})
}

func TestParseHours(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		hours, err := parseHours([]hoursReq{
			{Day: "Monday", OpenTime: "09:00", CloseTime: "17:00"},
			{Day: "tuesday", IsClosed: true},
		})
		if err != nil {
			t.Fatalf("parseHours: %v", err)
		}
		if len(hours) != 2 || hours[0].Day != "monday" || !hours[1].IsClosed {
			t.Errorf("unexpected result: %+v", hours)
		}
	})
	t.Run("UnknownDay", func(t *testing.T) {
		if _, err := parseHours([]hoursReq{{Day: "funday", OpenTime: "09:00", CloseTime: "17:00"}}); err == nil {
			t.Error("expected error for unknown day")
		}
	})
	t.Run("DuplicateDay", func(t *testing.T) {
		if _, err := parseHours([]hoursReq{
			{Day: "monday", OpenTime: "09:00", CloseTime: "17:00"},
			{Day: "monday", OpenTime: "10:00", CloseTime: "18:00"},
		}); err == nil {
			t.Error("expected error for duplicate day")
		}
	})
	t.Run("InvertedHours", func(t *testing.T) {
		// closing before opening yields zero slots, flagged as invalid
		if _, err := parseHours([]hoursReq{{Day: "monday", OpenTime: "17:00", CloseTime: "09:00"}}); err == nil {
			t.Error("expected error for inverted hours")
		}
	})
	t.Run("ClosedDayIgnoresTimes", func(t *testing.T) {
		if _, err := parseHours([]hoursReq{{Day: "sunday", IsClosed: true, OpenTime: "bad", CloseTime: "worse"}}); err != nil {
			t.Errorf("closed day should not validate times: %v", err)
		}
	})
}

func TestParsePartySize(t *testing.T) {
	cases := []struct {
		raw  string
		want uint32
		ok   bool
	}{
		{"2", 2, true},
		{" 12 ", 12, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"5000", 0, false},
	}
	for _, tc := range cases {
		got, ok := parsePartySize(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("parsePartySize(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

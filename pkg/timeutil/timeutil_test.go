package timeutil

import (
	"testing"
	"time"
)

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"05:00", 300},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, c := range cases {
		if got := TimeToMinutes(c.in); got != c.want {
			t.Fatalf("TimeToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{750, "12:30"},
		{1435, "23:55"},
		{749.6, "12:30"}, // rounds to nearest minute
		{1440, "00:00"},  // hour wraps modulo 24
	}
	for _, c := range cases {
		if got := MinutesToTime(c.in); got != c.want {
			t.Fatalf("MinutesToTime(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSnapGridAndClamp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{2, 0},
		{3, 5},
		{62, 60},
		{63, 65},
		{-20, 0},
		{1439, 1435},
		{99999, 1435},
	}
	for _, c := range cases {
		if got := Snap(c.in); got != c.want {
			t.Fatalf("Snap(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSnapIdempotent(t *testing.T) {
	for m := -100; m < 1600; m++ {
		once := Snap(float64(m))
		twice := Snap(float64(once))
		if once != twice {
			t.Fatalf("Snap not idempotent at %d: %d != %d", m, once, twice)
		}
	}
}

func TestDayKeyMondayFirst(t *testing.T) {
	// 2026-02-16 is a Monday.
	d := time.Date(2026, 2, 16, 0, 0, 0, 0, time.Local)
	for i, want := range DayKeys {
		got := DayKey(d.AddDate(0, 0, i))
		if got != want {
			t.Fatalf("DayKey(+%d) = %q, want %q", i, got, want)
		}
	}
}

func TestWeekDate(t *testing.T) {
	// Thursday 2026-02-19; its week runs Mon 16th through Sun 22nd.
	if got := WeekDate("2026-02-19", "monday"); got != "2026-02-16" {
		t.Fatalf("WeekDate monday = %q", got)
	}
	if got := WeekDate("2026-02-19", "sunday"); got != "2026-02-22" {
		t.Fatalf("WeekDate sunday = %q", got)
	}
	if got := WeekDate("2026-02-19", "thursday"); got != "2026-02-19" {
		t.Fatalf("WeekDate thursday = %q", got)
	}
}

func TestToAladhanDate(t *testing.T) {
	if got := ToAladhanDate("2026-02-18"); got != "18-02-2026" {
		t.Fatalf("ToAladhanDate = %q", got)
	}
}

func TestDateInRange(t *testing.T) {
	if !DateInRange("2026-02-18", "2026-02-01", "2026-03-01") {
		t.Fatalf("date inside range reported outside")
	}
	if DateInRange("2026-03-02", "2026-02-01", "2026-03-01") {
		t.Fatalf("date after range reported inside")
	}
	if !DateInRange("2026-02-01", "2026-02-01", "2026-03-01") {
		t.Fatalf("range start should be inclusive")
	}
}

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "12:00 AM"},
		{60, "1:00 AM"},
		{720, "12:00 PM"},
		{810, "1:30 PM"},
		{1380, "11:00 PM"},
	}
	for _, c := range cases {
		if got := To12Hour(c.in); got != c.want {
			t.Fatalf("To12Hour(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

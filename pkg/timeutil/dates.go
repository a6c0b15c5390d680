package timeutil

import (
	"fmt"
	"time"
)

// DayKeys are the routine day identifiers, Monday first.
var DayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayLabels maps day keys to display names.
var DayLabels = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
	"saturday":  "Saturday",
	"sunday":    "Sunday",
}

const isoFormat = "2006-01-02"

// ParseISO parses a "YYYY-MM-DD" string into a local-midnight time.
func ParseISO(s string) time.Time {
	t, _ := time.ParseInLocation(isoFormat, s, time.Local)
	return t
}

// ToISO formats a date as "YYYY-MM-DD".
func ToISO(t time.Time) string {
	return t.Format(isoFormat)
}

// TodayISO returns today's date as "YYYY-MM-DD".
func TodayISO() string {
	return ToISO(time.Now())
}

// DayKey returns the routine day key for a date ("monday".."sunday").
func DayKey(t time.Time) string {
	// time.Weekday has Sunday=0; we want Monday=0.
	idx := (int(t.Weekday()) + 6) % 7
	return DayKeys[idx]
}

// DateInRange reports whether date is within [start, end] inclusive.
// ISO strings compare correctly as plain strings.
func DateInRange(date, start, end string) bool {
	return date >= start && date <= end
}

// FormatDateShort renders an ISO date as e.g. "Feb 18".
func FormatDateShort(iso string) string {
	return ParseISO(iso).Format("Jan 2")
}

// FormatDateRange renders "Feb 18 - Mar 23" style plan ranges.
func FormatDateRange(start, end string) string {
	return fmt.Sprintf("%s - %s", FormatDateShort(start), FormatDateShort(end))
}

// ToAladhanDate converts "YYYY-MM-DD" to the "DD-MM-YYYY" form the
// Aladhan API expects.
func ToAladhanDate(iso string) string {
	if len(iso) != len(isoFormat) {
		return iso
	}
	return iso[8:10] + "-" + iso[5:7] + "-" + iso[0:4]
}

// AddDays returns the ISO date n days after iso.
func AddDays(iso string, n int) string {
	return ToISO(ParseISO(iso).AddDate(0, 0, n))
}

// WeekDate returns the ISO date of the given day key within the same
// Monday-Sunday week as the reference date.
func WeekDate(referenceISO, targetDayKey string) string {
	ref := ParseISO(referenceISO)
	refIdx := (int(ref.Weekday()) + 6) % 7
	targetIdx := 0
	for i, k := range DayKeys {
		if k == targetDayKey {
			targetIdx = i
			break
		}
	}
	return ToISO(ref.AddDate(0, 0, targetIdx-refIdx))
}

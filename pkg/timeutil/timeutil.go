package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// SnapResolution is the drag/creation grid in minutes.
	SnapResolution = 5
	// LatestStart is the last valid block start (23:55).
	LatestStart = 23*60 + 55
)

// TimeToMinutes converts an "HH:MM" string to minutes since midnight.
// Input is assumed well-formed; malformed strings yield 0 for the
// broken component.
func TimeToMinutes(t string) int {
	h, m, _ := strings.Cut(t, ":")
	hours, _ := strconv.Atoi(h)
	mins, _ := strconv.Atoi(m)
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM". The value
// is rounded to the nearest minute and the hour component wraps modulo
// 24; the minute component does not wrap separately, so callers should
// clamp to [0, 1439] before converting near day boundaries.
func MinutesToTime(m float64) string {
	r := int(math.Round(m))
	return fmt.Sprintf("%02d:%02d", (r/60)%24, r%60)
}

// Snap rounds minutes to the nearest SnapResolution multiple and clamps
// the result to [0, LatestStart] so a block can never start past 23:55.
func Snap(m float64) int {
	snapped := int(math.Round(m/SnapResolution)) * SnapResolution
	if snapped < 0 {
		return 0
	}
	if snapped > LatestStart {
		return LatestStart
	}
	return snapped
}

// To12Hour formats minutes since midnight as "h:MM AM/PM" for hour
// labels on the timeline.
func To12Hour(min int) string {
	h := (min / 60) % 24
	m := min % 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

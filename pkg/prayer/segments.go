package prayer

import (
	"yawm/pkg/database"
	"yawm/pkg/timeutil"
)

// Times holds the five daily prayer timestamps as "HH:MM" strings.
type Times struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// Names lists the prayers in day order.
var Names = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// SegmentIDs lists the six day segments in order.
var SegmentIDs = []string{
	"pre-fajr",
	"fajr-dhuhr",
	"dhuhr-asr",
	"asr-maghrib",
	"maghrib-isha",
	"post-isha",
}

// SegmentLabels maps segment ids to display labels.
var SegmentLabels = map[string]string{
	"pre-fajr":     "Pre-Fajr",
	"fajr-dhuhr":   "Fajr > Dhuhr",
	"dhuhr-asr":    "Dhuhr > Asr",
	"asr-maghrib":  "Asr > Maghrib",
	"maghrib-isha": "Maghrib > Isha",
	"post-isha":    "Post-Isha",
}

// Segment is one prayer-bounded interval of the day, held in both
// string and minute form.
type Segment struct {
	Start    string
	End      string
	StartMin int
	EndMin   int
}

// Segments maps segment ids to their intervals. A nil map means prayer
// times are unknown: blocks render with absolute times only and no
// segment bands are painted.
type Segments map[string]Segment

// MarkerDuration is the display length of a prayer marker block in
// minutes.
const MarkerDuration = 25

// ComputeSegments derives the six day segments from prayer times.
// The segments are contiguous and cover [00:00, 23:59] with no gaps
// and no overlaps. Returns nil when times are unavailable.
func ComputeSegments(times *Times) Segments {
	if times == nil {
		return nil
	}

	fajr := timeutil.TimeToMinutes(times.Fajr)
	dhuhr := timeutil.TimeToMinutes(times.Dhuhr)
	asr := timeutil.TimeToMinutes(times.Asr)
	maghrib := timeutil.TimeToMinutes(times.Maghrib)
	isha := timeutil.TimeToMinutes(times.Isha)

	return Segments{
		"pre-fajr":     {Start: "00:00", End: times.Fajr, StartMin: 0, EndMin: fajr},
		"fajr-dhuhr":   {Start: times.Fajr, End: times.Dhuhr, StartMin: fajr, EndMin: dhuhr},
		"dhuhr-asr":    {Start: times.Dhuhr, End: times.Asr, StartMin: dhuhr, EndMin: asr},
		"asr-maghrib":  {Start: times.Asr, End: times.Maghrib, StartMin: asr, EndMin: maghrib},
		"maghrib-isha": {Start: times.Maghrib, End: times.Isha, StartMin: maghrib, EndMin: isha},
		"post-isha":    {Start: times.Isha, End: "23:59", StartMin: isha, EndMin: 23*60 + 59},
	}
}

// ResolveBlockTime returns a block's effective start time. Blocks with
// no segment anchor, or when segments are unavailable, keep their
// absolute time. Anchored blocks resolve to segment start plus offset,
// clamped to [00:00, 23:55] — resolution saturates at the day
// boundaries rather than wrapping, since a prayer-anchored block never
// crosses midnight.
func ResolveBlockTime(b database.Block, segments Segments) string {
	if b.Segment == "" || segments == nil {
		if b.Time == "" {
			return "08:00"
		}
		return b.Time
	}
	seg, ok := segments[b.Segment]
	if !ok {
		if b.Time == "" {
			return "08:00"
		}
		return b.Time
	}
	resolved := seg.StartMin + b.OffsetMinutes
	if resolved < 0 {
		resolved = 0
	}
	if resolved > timeutil.LatestStart {
		resolved = timeutil.LatestStart
	}
	return timeutil.MinutesToTime(float64(resolved))
}

// MarkerBlocks generates the five immovable prayer marker blocks for a
// day. They are computed per render, never persisted, and keep stable
// ids so view state survives re-renders.
func MarkerBlocks(times *Times) []database.Block {
	if times == nil {
		return nil
	}
	return []database.Block{
		{ID: "prayer-fajr", Time: times.Fajr, Activity: "Fajr", Type: "prayer", Icon: "🕌", Duration: MarkerDuration},
		{ID: "prayer-dhuhr", Time: times.Dhuhr, Activity: "Dhuhr", Type: "prayer", Icon: "🕌", Duration: MarkerDuration},
		{ID: "prayer-asr", Time: times.Asr, Activity: "Asr", Type: "prayer", Icon: "🕌", Duration: MarkerDuration},
		{ID: "prayer-maghrib", Time: times.Maghrib, Activity: "Maghrib", Type: "prayer", Icon: "🕌", Duration: MarkerDuration},
		{ID: "prayer-isha", Time: times.Isha, Activity: "Isha", Type: "prayer", Icon: "🕌", Duration: MarkerDuration},
	}
}

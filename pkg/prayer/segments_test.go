package prayer

import (
	"testing"

	"yawm/pkg/database"
)

var testTimes = &Times{
	Fajr:    "05:00",
	Dhuhr:   "12:30",
	Asr:     "15:45",
	Maghrib: "18:20",
	Isha:    "19:50",
}

func TestComputeSegmentsNilTimes(t *testing.T) {
	if segs := ComputeSegments(nil); segs != nil {
		t.Fatalf("expected nil segments for nil times, got %v", segs)
	}
}

func TestSegmentsPartitionDay(t *testing.T) {
	segs := ComputeSegments(testTimes)
	if segs == nil {
		t.Fatalf("expected segments")
	}
	if len(segs) != 6 {
		t.Fatalf("expected 6 segments, got %d", len(segs))
	}

	// Segments must tile [0, 1439] in order with no gap or overlap.
	prevEnd := 0
	for i, id := range SegmentIDs {
		seg, ok := segs[id]
		if !ok {
			t.Fatalf("missing segment %q", id)
		}
		if seg.StartMin != prevEnd {
			t.Fatalf("segment %q starts at %d, want %d", id, seg.StartMin, prevEnd)
		}
		if seg.EndMin <= seg.StartMin {
			t.Fatalf("segment %q is empty or inverted: [%d, %d)", id, seg.StartMin, seg.EndMin)
		}
		if i == len(SegmentIDs)-1 && seg.EndMin != 23*60+59 {
			t.Fatalf("last segment ends at %d, want 1439", seg.EndMin)
		}
		prevEnd = seg.EndMin
	}
}

func TestSegmentBoundaries(t *testing.T) {
	segs := ComputeSegments(testTimes)
	cases := []struct {
		id       string
		startMin int
		endMin   int
	}{
		{"pre-fajr", 0, 300},
		{"fajr-dhuhr", 300, 750},
		{"dhuhr-asr", 750, 945},
		{"asr-maghrib", 945, 1100},
		{"maghrib-isha", 1100, 1190},
		{"post-isha", 1190, 1439},
	}
	for _, c := range cases {
		seg := segs[c.id]
		if seg.StartMin != c.startMin || seg.EndMin != c.endMin {
			t.Fatalf("segment %q = [%d, %d), want [%d, %d)",
				c.id, seg.StartMin, seg.EndMin, c.startMin, c.endMin)
		}
	}
}

func TestResolveBlockTimeAnchored(t *testing.T) {
	segs := ComputeSegments(testTimes)
	b := database.Block{ID: "b1", Time: "09:00", Segment: "dhuhr-asr", OffsetMinutes: 30}
	// Dhuhr 12:30 + 30min = 13:00; the stored absolute time is ignored.
	if got := ResolveBlockTime(b, segs); got != "13:00" {
		t.Fatalf("ResolveBlockTime = %q, want 13:00", got)
	}
}

func TestResolveBlockTimeAbsolute(t *testing.T) {
	segs := ComputeSegments(testTimes)
	b := database.Block{ID: "b1", Time: "09:15"}
	if got := ResolveBlockTime(b, segs); got != "09:15" {
		t.Fatalf("ResolveBlockTime = %q, want 09:15", got)
	}
	// Unavailable segments degrade to the absolute time.
	b.Segment = "dhuhr-asr"
	if got := ResolveBlockTime(b, nil); got != "09:15" {
		t.Fatalf("ResolveBlockTime with nil segments = %q, want 09:15", got)
	}
}

func TestResolveBlockTimeSaturates(t *testing.T) {
	segs := ComputeSegments(testTimes)
	// Post-isha anchor with a huge offset saturates at 23:55 instead
	// of wrapping into the next day.
	b := database.Block{ID: "b1", Segment: "post-isha", OffsetMinutes: 600}
	if got := ResolveBlockTime(b, segs); got != "23:55" {
		t.Fatalf("ResolveBlockTime = %q, want 23:55", got)
	}
	b = database.Block{ID: "b2", Segment: "pre-fajr", OffsetMinutes: -90}
	if got := ResolveBlockTime(b, segs); got != "00:00" {
		t.Fatalf("ResolveBlockTime = %q, want 00:00", got)
	}
}

func TestMarkerBlocks(t *testing.T) {
	if got := MarkerBlocks(nil); got != nil {
		t.Fatalf("expected nil markers for nil times")
	}
	markers := MarkerBlocks(testTimes)
	if len(markers) != 5 {
		t.Fatalf("expected 5 markers, got %d", len(markers))
	}
	wantIDs := []string{"prayer-fajr", "prayer-dhuhr", "prayer-asr", "prayer-maghrib", "prayer-isha"}
	for i, m := range markers {
		if m.ID != wantIDs[i] {
			t.Fatalf("marker %d id = %q, want %q", i, m.ID, wantIDs[i])
		}
		if m.Duration != MarkerDuration {
			t.Fatalf("marker %q duration = %d, want %d", m.ID, m.Duration, MarkerDuration)
		}
		if m.Type != "prayer" {
			t.Fatalf("marker %q type = %q", m.ID, m.Type)
		}
	}
	if markers[1].Time != "12:30" {
		t.Fatalf("dhuhr marker time = %q", markers[1].Time)
	}
}

package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"

	"yawm/pkg/config"
	"yawm/pkg/database"
	"yawm/pkg/timeline"
)

// testModel builds a model around a fixed layout without a database:
// hit testing and row math only read in-memory state. The controller
// and inputs are wired the same way NewModel wires them.
func testModel(blocks []database.Block) Model {
	commits := &[]pendingCommit{}
	m := Model{
		config:        config.Config{HourHeight: 3},
		width:         80,
		height:        40,
		commits:       commits,
		emptyPressRow: -1,
		rawBlocks:     blocks,

		activityInput: textinput.New(),
		timeInput:     textinput.New(),
		durationInput: textinput.New(),
		typeInput:     textinput.New(),
		iconInput:     textinput.New(),
		taskInput:     textinput.New(),

		planLabelInput: textinput.New(),
		planColorInput: textinput.New(),
		planStartInput: textinput.New(),
		planEndInput:   textinput.New(),

		cityInput:    textinput.New(),
		countryInput: textinput.New(),
	}
	m.controller = timeline.NewController(timeline.Config{
		HourHeight:      3,
		MoveThreshold:   0,
		MinDuration:     15,
		MinVisualHeight: 1,
	}, timeline.Callbacks{
		TimeChange: func(blockID, newTime string) {
			*commits = append(*commits, pendingCommit{kind: commitTimeChange, blockID: blockID, newTime: newTime})
		},
		Resize: func(blockID, newTime string, dur int) {
			*commits = append(*commits, pendingCommit{kind: commitResize, blockID: blockID, newTime: newTime, duration: dur})
		},
		Tap: func(blockID string) {
			*commits = append(*commits, pendingCommit{kind: commitTap, blockID: blockID})
		},
	})
	entries := make([]timeline.Entry, 0, len(blocks))
	for _, b := range blocks {
		entries = append(entries, timeline.EntryFromTime(b.ID, b.Time, b.Duration, b.Type == "prayer"))
	}
	m.laid = timeline.Layout(entries, timeline.Options{HourHeight: 3, MinVisualHeight: 1})
	return m
}

func TestHitTestBlockHandles(t *testing.T) {
	// 09:00 for 60 minutes at 3 rows/hour: rows 27, 28, 29.
	m := testModel([]database.Block{
		{ID: "b1", Time: "09:00", Duration: 60, Activity: "work"},
	})
	m.scroll = 27 // block top is the first visible row

	cases := []struct {
		name string
		y    int
		mode timeline.DragMode
	}{
		{"top row is the top handle", 4, timeline.DragTop},
		{"middle row moves", 5, timeline.DragMove},
		{"bottom row is the bottom handle", 6, timeline.DragBottom},
	}
	for _, c := range cases {
		h := m.hitTest(20, c.y)
		if h.kind != hitBlock {
			t.Fatalf("%s: expected block hit, got kind %d", c.name, h.kind)
		}
		if h.blockID != "b1" {
			t.Fatalf("%s: expected b1, got %q", c.name, h.blockID)
		}
		if h.mode != c.mode {
			t.Fatalf("%s: expected mode %d, got %d", c.name, c.mode, h.mode)
		}
	}
}

func TestHitTestShortBlockIsBodyOnly(t *testing.T) {
	m := testModel([]database.Block{
		{ID: "b1", Time: "09:00", Duration: 15, Activity: "standup"},
	})
	m.scroll = 27

	h := m.hitTest(20, 4)
	if h.kind != hitBlock || h.mode != timeline.DragMove {
		t.Fatalf("single-row block should only move, got kind %d mode %d", h.kind, h.mode)
	}
}

func TestHitTestTaskRows(t *testing.T) {
	// 09:00 for 120 minutes: 6 rows, task lines on rows 2 and 3.
	m := testModel([]database.Block{
		{ID: "b1", Time: "09:00", Duration: 120, Activity: "deep work",
			Tasks: []database.Task{{ID: "t1", Text: "draft"}, {ID: "t2", Text: "review"}}},
	})
	m.scroll = 27

	h := m.hitTest(20, 6)
	if h.kind != hitTaskRow || h.taskIdx != 0 {
		t.Fatalf("expected task 0, got kind %d idx %d", h.kind, h.taskIdx)
	}
	h = m.hitTest(20, 7)
	if h.kind != hitTaskRow || h.taskIdx != 1 {
		t.Fatalf("expected task 1, got kind %d idx %d", h.kind, h.taskIdx)
	}
	// The bottom row stays a resize handle even with tasks present.
	h = m.hitTest(20, 9)
	if h.kind != hitBlock || h.mode != timeline.DragBottom {
		t.Fatalf("bottom row should resize, got kind %d mode %d", h.kind, h.mode)
	}
}

func TestHitTestGutterAndEmpty(t *testing.T) {
	m := testModel(nil)

	if h := m.hitTest(3, 10); h.kind != hitOutside {
		t.Fatalf("gutter click should be outside, got kind %d", h.kind)
	}
	if h := m.hitTest(20, 2); h.kind != hitOutside {
		t.Fatalf("header click should be outside, got kind %d", h.kind)
	}

	h := m.hitTest(20, 10)
	if h.kind != hitEmpty {
		t.Fatalf("expected empty hit, got kind %d", h.kind)
	}
	// Row 6 of the timeline at 3 rows/hour starts at 02:00.
	if got := m.rowToMinutes(h.row); got != 120 {
		t.Fatalf("expected row to map to minute 120, got %d", got)
	}
}

func TestHitTestScrollOffset(t *testing.T) {
	m := testModel([]database.Block{
		{ID: "b1", Time: "00:00", Duration: 60, Activity: "sleep"},
	})

	// Unscrolled, the midnight block sits right under the header.
	if h := m.hitTest(20, 5); h.kind != hitBlock {
		t.Fatalf("expected block at top of viewport, got kind %d", h.kind)
	}
	m.scroll = 10
	if h := m.hitTest(20, 5); h.kind != hitEmpty {
		t.Fatalf("after scrolling the block should be off-screen, got kind %d", h.kind)
	}
}

func TestApplyCommitsClearsSegmentAnchor(t *testing.T) {
	m := testModel([]database.Block{
		{ID: "b1", Segment: "dhuhr-asr", OffsetMinutes: 30, Duration: 60, Activity: "lunch"},
	})

	*m.commits = append(*m.commits, pendingCommit{
		kind: commitTimeChange, blockID: "b1", newTime: "13:05",
	})
	m.applyCommits()

	b := m.blockByID("b1")
	if b.Time != "13:05" {
		t.Fatalf("expected time 13:05, got %q", b.Time)
	}
	if b.Segment != "" || b.OffsetMinutes != 0 {
		t.Fatalf("moving a block must drop its segment anchor, got %q/%d", b.Segment, b.OffsetMinutes)
	}
	if len(*m.commits) != 0 {
		t.Fatalf("commit queue should drain, %d left", len(*m.commits))
	}

	*m.commits = append(*m.commits, pendingCommit{
		kind: commitResize, blockID: "b1", newTime: "13:05", duration: 90,
	})
	m.applyCommits()
	if b.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", b.Duration)
	}
}

func TestHitTestPrayerMarker(t *testing.T) {
	m := testModel([]database.Block{
		{ID: "prayer-fajr", Time: "05:00", Duration: 25, Activity: "Fajr", Type: "prayer"},
	})
	m.scroll = 15 // 05:00 at 3 rows/hour

	h := m.hitTest(20, 4)
	if h.kind != hitBlock || !h.prayer {
		t.Fatalf("expected prayer block hit, got kind %d prayer %v", h.kind, h.prayer)
	}
}

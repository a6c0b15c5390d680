// Package timeline holds the day-timeline core: the block layout
// engine that packs overlapping blocks into side-by-side columns, and
// the gesture controller that drives drag-to-move and drag-to-resize.
// Both are pure and UI-free; the bubbletea layer feeds them input and
// renders their output.
package timeline

import (
	"sort"

	"yawm/pkg/timeutil"
)

// DefaultDuration is assumed for blocks persisted without a duration.
const DefaultDuration = 60

// Entry is one block handed to the layout pass, with its start already
// resolved to absolute minutes.
type Entry struct {
	ID       string
	StartMin int
	Duration int
	Prayer   bool
}

// Options controls the pixel (terminal row) geometry of the layout.
type Options struct {
	// HourHeight is the rendered height of one hour.
	HourHeight float64
	// MinVisualHeight is the enforced minimum rendered block height.
	// Blocks shorter than this still occupy MinVisualHeight on screen,
	// and the layout accounts for that when detecting overlap.
	MinVisualHeight float64
}

// Laid is an Entry with its computed column assignment and geometry.
type Laid struct {
	Entry
	EndMin    int
	VisualEnd float64
	Col       int
	TotalCols int
	Top       float64
	Height    float64
}

// Layout assigns non-overlapping columns to a set of blocks.
//
// Columns are packed greedily left to right in start order (classic
// interval partitioning, which uses the minimum number of columns).
// Overlap is tested against each block's visual end rather than its
// nominal end, so a 15-minute block rendered at the minimum height
// still pushes its neighbor into the next column instead of being
// painted over. Blocks are then partitioned into maximal connected
// overlap groups; every block in a group shares the group's column
// count so the group renders at uniform fractional width.
func Layout(entries []Entry, opts Options) []Laid {
	if len(entries) == 0 {
		return []Laid{}
	}

	var minVisualDur float64
	if opts.HourHeight > 0 && opts.MinVisualHeight > 0 {
		minVisualDur = opts.MinVisualHeight / opts.HourHeight * 60
	}

	items := make([]Laid, 0, len(entries))
	for _, e := range entries {
		if e.Duration <= 0 {
			e.Duration = DefaultDuration
		}
		l := Laid{
			Entry:     e,
			EndMin:    e.StartMin + e.Duration,
			VisualEnd: float64(e.StartMin + e.Duration),
		}
		if minVisualDur > 0 && float64(e.Duration) < minVisualDur {
			l.VisualEnd = float64(e.StartMin) + minVisualDur
		}
		items = append(items, l)
	}

	// Start ascending, longer blocks first on ties so wide spans take
	// the leftmost columns. Stable, so equal blocks keep input order
	// and repeated passes agree.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].StartMin != items[j].StartMin {
			return items[i].StartMin < items[j].StartMin
		}
		return items[i].Duration > items[j].Duration
	})

	// Greedy first-fit: columnEnd[c] is the visual end of the last
	// block placed in column c.
	var columnEnd []float64
	for i := range items {
		placed := -1
		for c := range columnEnd {
			if columnEnd[c] <= float64(items[i].StartMin) {
				placed = c
				break
			}
		}
		if placed == -1 {
			placed = len(columnEnd)
			columnEnd = append(columnEnd, 0)
		}
		columnEnd[placed] = items[i].VisualEnd
		items[i].Col = placed
	}

	// Partition into maximal connected overlap groups. The boundary is
	// strict: a block starting exactly at the running group end opens a
	// new group, so adjacent-but-touching blocks do not share width.
	groupStart := 0
	groupEnd := 0.0
	closeGroup := func(from, to int) {
		total := 0
		for i := from; i < to; i++ {
			if items[i].Col+1 > total {
				total = items[i].Col + 1
			}
		}
		for i := from; i < to; i++ {
			items[i].TotalCols = total
		}
	}
	for i := range items {
		if i > groupStart && float64(items[i].StartMin) >= groupEnd {
			closeGroup(groupStart, i)
			groupStart = i
			groupEnd = 0
		}
		if items[i].VisualEnd > groupEnd {
			groupEnd = items[i].VisualEnd
		}
	}
	closeGroup(groupStart, len(items))

	for i := range items {
		items[i].Top = float64(items[i].StartMin) / 60 * opts.HourHeight
		h := float64(items[i].Duration) / 60 * opts.HourHeight
		if opts.MinVisualHeight > 0 && h < opts.MinVisualHeight {
			h = opts.MinVisualHeight
		}
		items[i].Height = h
	}

	return items
}

// EntryFromTime builds a layout Entry from a block's resolved "HH:MM"
// start time.
func EntryFromTime(id, hhmm string, duration int, prayer bool) Entry {
	return Entry{
		ID:       id,
		StartMin: timeutil.TimeToMinutes(hhmm),
		Duration: duration,
		Prayer:   prayer,
	}
}

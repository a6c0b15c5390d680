package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"yawm/pkg/database"
	"yawm/pkg/prayer"
	"yawm/pkg/timeline"
	"yawm/pkg/timeutil"
	"yawm/pkg/utils"
)

// prayerTimesMsg delivers an asynchronous prayer time fetch result
type prayerTimesMsg struct {
	key   string
	times *prayer.Times
	err   error
}

// reloadDay loads the plan, blocks and custom types for the viewed date
func (m *Model) reloadDay() {
	plans, err := database.LoadPlans(m.db)
	if err != nil {
		m.err = err
		return
	}
	m.plans = plans

	m.plan, err = database.PlanCovering(m.db, m.viewDate)
	if err != nil {
		m.err = err
		return
	}

	if m.plan != nil {
		dayKey := timeutil.DayKey(timeutil.ParseISO(m.viewDate))
		m.rawBlocks, err = database.LoadDayBlocks(m.db, m.plan.ID, dayKey)
		if err != nil {
			m.err = err
			return
		}
	} else {
		m.rawBlocks = nil
	}

	types, err := database.LoadCustomTypes(m.db)
	if err != nil {
		m.err = err
		return
	}
	m.customTypes = types

	m.relayout()
}

// relayout recomputes the timeline layout from the raw blocks and
// prayer segments. Prayer markers participate in the same column
// packing as user blocks.
func (m *Model) relayout() {
	entries := make([]timeline.Entry, 0, len(m.rawBlocks)+len(prayer.Names))
	for _, b := range m.rawBlocks {
		start := prayer.ResolveBlockTime(b, m.segments)
		dur := b.Duration
		if dur <= 0 {
			dur = timeline.DefaultDuration
		}
		entries = append(entries, timeline.Entry{
			ID:       b.ID,
			StartMin: timeutil.TimeToMinutes(start),
			Duration: dur,
		})
	}
	m.prayerBlocks = prayer.MarkerBlocks(m.times)
	for _, pb := range m.prayerBlocks {
		entries = append(entries, timeline.Entry{
			ID:       pb.ID,
			StartMin: timeutil.TimeToMinutes(pb.Time),
			Duration: pb.Duration,
			Prayer:   true,
		})
	}

	m.laid = timeline.Layout(entries, timeline.Options{
		HourHeight:      float64(m.config.HourHeight),
		MinVisualHeight: 1,
	})
}

// blockByID looks a user block up in the loaded day
func (m *Model) blockByID(id string) *database.Block {
	for i := range m.rawBlocks {
		if m.rawBlocks[i].ID == id {
			return &m.rawBlocks[i]
		}
	}
	return nil
}

// saveDay persists the whole block list for the viewed day
func (m *Model) saveDay() {
	if m.plan == nil {
		return
	}
	dayKey := timeutil.DayKey(timeutil.ParseISO(m.viewDate))
	if err := database.ReplaceDayBlocks(m.db, m.plan.ID, dayKey, m.rawBlocks); err != nil {
		m.err = err
		return
	}
	m.relayout()
}

// applyCommits drains mutations queued by the gesture controller
func (m *Model) applyCommits() {
	for _, c := range *m.commits {
		switch c.kind {
		case commitTimeChange:
			if b := m.blockByID(c.blockID); b != nil {
				b.Time = c.newTime
				b.Segment = ""
				b.OffsetMinutes = 0
				m.saveDay()
			}
		case commitResize:
			if b := m.blockByID(c.blockID); b != nil {
				b.Time = c.newTime
				b.Duration = c.duration
				b.Segment = ""
				b.OffsetMinutes = 0
				m.saveDay()
			}
		case commitTap:
			if b := m.blockByID(c.blockID); b != nil {
				m.openBlockEditor(b)
			}
		}
	}
	*m.commits = (*m.commits)[:0]
}

// createBlockAt inserts a default block starting at the given minute
// and opens the editor on it. Closing the editor without saving
// discards the block again.
func (m *Model) createBlockAt(startMin int) {
	if m.plan == nil {
		m.err = fmt.Errorf("no plan covers %s, press 'p' to create one", m.viewDate)
		return
	}
	b := database.Block{
		ID:       uuid.New().String(),
		Time:     timeutil.MinutesToTime(float64(timeutil.Snap(float64(startMin)))),
		Duration: timeline.DefaultDuration,
		Activity: "(New)",
		Type:     "neutral",
	}
	m.rawBlocks = append(m.rawBlocks, b)
	m.saveDay()
	m.newBlockID = b.ID
	m.openBlockEditor(&m.rawBlocks[len(m.rawBlocks)-1])
}

// deleteBlock removes a block from the day and persists
func (m *Model) deleteBlock(id string) {
	for i := range m.rawBlocks {
		if m.rawBlocks[i].ID == id {
			m.rawBlocks = append(m.rawBlocks[:i], m.rawBlocks[i+1:]...)
			break
		}
	}
	m.saveDay()
}

// openBlockEditor enters BlockEditMode pre-filled from the block
func (m *Model) openBlockEditor(b *database.Block) {
	m.editingBlock = b
	m.mode = BlockEditMode
	m.resetInputs()
	m.activityInput.SetValue(b.Activity)
	m.timeInput.SetValue(prayer.ResolveBlockTime(*b, m.segments))
	m.durationInput.SetValue(strconv.Itoa(b.Duration))
	m.typeInput.SetValue(b.Type)
	m.iconInput.SetValue(b.Icon)
	m.focusInput(0)
}

// closeBlockEditor leaves the editor; save controls whether the
// edits (and a click-created block) survive
func (m *Model) closeBlockEditor(save bool) {
	if save && m.editingBlock != nil {
		b := m.editingBlock
		b.Activity = strings.TrimSpace(m.activityInput.Value())
		if b.Activity == "" {
			b.Activity = "(New)"
		}
		if t := strings.TrimSpace(m.timeInput.Value()); t != "" {
			b.Time = t
			b.Segment = ""
			b.OffsetMinutes = 0
		}
		if d, err := strconv.Atoi(strings.TrimSpace(m.durationInput.Value())); err == nil && d >= 15 {
			b.Duration = d
		}
		b.Type = strings.TrimSpace(m.typeInput.Value())
		if b.Type == "" {
			b.Type = "neutral"
		}
		b.Icon = strings.TrimSpace(m.iconInput.Value())
		m.saveDay()
	} else if !save && m.newBlockID != "" {
		m.deleteBlock(m.newBlockID)
	}
	m.newBlockID = ""
	m.editingBlock = nil
	m.mode = NormalMode
	m.resetInputs()
}

// addTaskFromInput appends a sub-task from the task input field
func (m *Model) addTaskFromInput() {
	if m.editingBlock == nil {
		return
	}
	text := strings.TrimSpace(m.taskInput.Value())
	if text == "" {
		return
	}
	m.editingBlock.Tasks = append(m.editingBlock.Tasks, database.Task{
		ID:   uuid.New().String(),
		Text: text,
	})
	m.taskInput.Reset()
}

// removeLastTask drops the most recently added sub-task
func (m *Model) removeLastTask() {
	if m.editingBlock == nil || len(m.editingBlock.Tasks) == 0 {
		return
	}
	m.editingBlock.Tasks = m.editingBlock.Tasks[:len(m.editingBlock.Tasks)-1]
}

// toggleTask flips a sub-task's done state and persists
func (m *Model) toggleTask(blockID string, taskIdx int) {
	b := m.blockByID(blockID)
	if b == nil || taskIdx < 0 || taskIdx >= len(b.Tasks) {
		return
	}
	b.Tasks[taskIdx].Done = !b.Tasks[taskIdx].Done
	m.saveDay()
}

// savePlanFromInputs creates or updates a plan from the plan form
func (m *Model) savePlanFromInputs() {
	label := strings.TrimSpace(m.planLabelInput.Value())
	start := strings.TrimSpace(m.planStartInput.Value())
	end := strings.TrimSpace(m.planEndInput.Value())
	if label == "" || start == "" || end == "" {
		m.err = fmt.Errorf("plan needs a label, start and end date")
		return
	}
	color := strings.TrimSpace(m.planColorInput.Value())
	if color == "" {
		color = "#2d8a4e"
	}
	p := database.Plan{
		ID:        uuid.New().String(),
		Label:     label,
		Color:     color,
		StartDate: start,
		EndDate:   end,
	}
	if err := database.AddPlan(m.db, p); err != nil {
		m.err = err
		return
	}
	utils.Log("Created plan %s (%s to %s)", label, start, end)
	m.reloadDay()
}

// changeDay moves the viewed date by a number of days
func (m *Model) changeDay(delta int) tea.Cmd {
	m.viewDate = timeutil.AddDays(m.viewDate, delta)
	m.scroll = 0
	m.times = nil
	m.segments = nil
	m.reloadDay()
	return m.fetchPrayerTimes()
}

// jumpToWeekday moves to the given weekday within the current week
func (m *Model) jumpToWeekday(dayIdx int) tea.Cmd {
	if dayIdx < 0 || dayIdx >= len(timeutil.DayKeys) {
		return nil
	}
	m.viewDate = timeutil.WeekDate(m.viewDate, timeutil.DayKeys[dayIdx])
	m.scroll = 0
	m.times = nil
	m.segments = nil
	m.reloadDay()
	return m.fetchPrayerTimes()
}

// fetchPrayerTimes returns a command that resolves the prayer times
// for the viewed date at the configured location
func (m *Model) fetchPrayerTimes() tea.Cmd {
	date, city, country := m.viewDate, m.config.City, m.config.Country
	key := prayer.CacheKey(date, city, country)
	client := m.prayerClient
	m.loadingTimes = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		times, err := client.TimesFor(ctx, date, city, country)
		return prayerTimesMsg{key: key, times: times, err: err}
	}
}

// hitKind classifies what a screen coordinate lands on
type hitKind int

const (
	hitOutside hitKind = iota
	hitEmpty
	hitBlock
	hitTaskRow
)

type hitResult struct {
	kind    hitKind
	blockID string
	prayer  bool
	taskIdx int
	mode    timeline.DragMode
	row     int // timeline-space row
	x       int
}

// gutterWidth is the exact cell width of the time gutter; the widest
// hour label ("12:00 AM") plus the rule character.
const gutterWidth = 10

// headerRows is the fixed chrome above the timeline in day view
func (m Model) headerRows() int {
	return 4
}

// timelineRows is the visible timeline viewport height
func (m Model) timelineRows() int {
	rows := m.height - m.headerRows() - 2 // help bar and status line
	if rows < 1 {
		rows = 1
	}
	return rows
}

// totalRows is the full day height in rows
func (m Model) totalRows() int {
	return 24 * m.config.HourHeight
}

// fieldWidth is the horizontal space available to blocks
func (m Model) fieldWidth() int {
	w := m.width - gutterWidth
	if w < 10 {
		w = 10
	}
	return w
}

// blockSpan computes the horizontal cell range of a laid block
func (m Model) blockSpan(l timeline.Laid) (left, right int) {
	fw := m.fieldWidth()
	left = gutterWidth + l.Col*fw/l.TotalCols
	right = gutterWidth + (l.Col+1)*fw/l.TotalCols
	if right <= left {
		right = left + 1
	}
	return left, right
}

// blockRows computes the vertical cell range of a laid block,
// honoring an active drag override
func (m Model) blockRows(l timeline.Laid) (top, height int) {
	if ov, ok := m.controller.Override(); ok && ov.BlockID == l.ID {
		top = int(ov.Top)
		height = int(ov.Height + 0.5)
	} else {
		top = int(l.Top)
		height = int(l.Height + 0.5)
	}
	if height < 1 {
		height = 1
	}
	return top, height
}

// hitTest maps a screen coordinate to a timeline target
func (m Model) hitTest(x, y int) hitResult {
	if y < m.headerRows() || y >= m.headerRows()+m.timelineRows() || x < gutterWidth {
		return hitResult{kind: hitOutside}
	}
	row := y - m.headerRows() + m.scroll
	if row < 0 || row >= m.totalRows() {
		return hitResult{kind: hitOutside}
	}

	for _, l := range m.laid {
		top, height := m.blockRows(l)
		if row < top || row >= top+height {
			continue
		}
		left, right := m.blockSpan(l)
		if x < left || x >= right {
			continue
		}
		h := hitResult{kind: hitBlock, blockID: l.ID, prayer: l.Prayer, taskIdx: -1, row: row, x: x}
		// Sub-task lines start on the third row of a tall block and
		// take priority over drag handles.
		if b := m.blockByID(l.ID); b != nil && len(b.Tasks) > 0 && height >= 3 {
			taskIdx := row - top - 2
			if taskIdx >= 0 && taskIdx < len(b.Tasks) && row < top+height-1 {
				h.kind = hitTaskRow
				h.taskIdx = taskIdx
				return h
			}
		}
		switch {
		case height >= 3 && row == top:
			h.mode = timeline.DragTop
		case height >= 2 && row == top+height-1:
			h.mode = timeline.DragBottom
		default:
			h.mode = timeline.DragMove
		}
		return h
	}

	return hitResult{kind: hitEmpty, taskIdx: -1, row: row, x: x}
}

// gestureRow converts a raw event height to a timeline row for an
// in-flight gesture, clamped to the day. Unlike hitTest it ignores
// what the pointer is over: the gesture owns the pointer until
// release.
func (m Model) gestureRow(y int) float64 {
	row := y - m.headerRows() + m.scroll
	if row < 0 {
		row = 0
	}
	if max := m.totalRows() - 1; row > max {
		row = max
	}
	return float64(row)
}

// rowToMinutes converts a timeline row to the minute it begins at
func (m Model) rowToMinutes(row int) int {
	return row * 60 / m.config.HourHeight
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"yawm/pkg/database"
	"yawm/pkg/prayer"
	"yawm/pkg/timeline"
	"yawm/pkg/timeutil"
)

// View renders the current application state
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.mode {
	case BlockEditMode:
		return m.renderBlockEditor()
	case PlanEditMode:
		return m.renderPlanEditor()
	case LocationMode:
		return m.renderLocationForm()
	case DeleteConfirmMode:
		return m.renderDeleteConfirm()
	case ContextMenuMode:
		return m.renderContextMenu()
	case HelpViewMode:
		return m.renderHelp()
	}

	if m.viewMode == database.CalendarViewMode {
		return m.renderCalendar()
	}
	return m.renderDay()
}

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.styles.AccentColor))
}

func (m Model) dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.SegmentBandColor))
}

func (m Model) errStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.ErrorColor))
}

// typeColor resolves a block type to its color, user-defined types
// taking precedence over the built-in registry
func (m Model) typeColor(blockType string) string {
	if c, ok := m.customTypes[blockType]; ok {
		return c
	}
	if c, ok := m.styles.TypeColors[blockType]; ok {
		return c
	}
	return m.styles.TypeColors["neutral"]
}

// renderBlockFor finds the displayable block behind a laid entry,
// checking user blocks first and prayer markers second
func (m Model) renderBlockFor(id string) *database.Block {
	if b := m.blockByID(id); b != nil {
		return b
	}
	for i := range m.prayerBlocks {
		if m.prayerBlocks[i].ID == id {
			return &m.prayerBlocks[i]
		}
	}
	return nil
}

// renderDay draws the header, the scrolled timeline viewport and the
// help bar
func (m Model) renderDay() string {
	var b strings.Builder

	date := timeutil.ParseISO(m.viewDate)
	title := m.titleStyle().Render("yawm") + "  " + date.Format("Monday, 02 Jan 2006")
	if m.viewDate == timeutil.TodayISO() {
		title += m.dimStyle().Render("  (today)")
	}
	if m.plan != nil {
		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.plan.Color)).
			Render(" ■ " + m.plan.Label)
		title += badge
	} else {
		title += m.dimStyle().Render("  no plan — press 'p'")
	}
	b.WriteString(title + "\n")

	b.WriteString(m.renderPrayerLine() + "\n")

	if m.err != nil {
		b.WriteString(m.errStyle().Render(m.err.Error()) + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(m.dimStyle().Render(strings.Repeat("─", m.width)) + "\n")

	rows := m.timelineRows()
	for row := m.scroll; row < m.scroll+rows && row < m.totalRows(); row++ {
		b.WriteString(m.renderTimelineRow(row) + "\n")
	}

	b.WriteString(m.renderStatusLine() + "\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderPrayerLine shows the five prayer times for the viewed day
func (m Model) renderPrayerLine() string {
	if m.loadingTimes && m.times == nil {
		return m.dimStyle().Render("fetching prayer times for " + m.config.City + "...")
	}
	if m.times == nil {
		return m.dimStyle().Render("prayer times unavailable — anchored blocks shown at fallback times")
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.PrayerColor))
	parts := []string{
		"Fajr " + m.times.Fajr,
		"Dhuhr " + m.times.Dhuhr,
		"Asr " + m.times.Asr,
		"Maghrib " + m.times.Maghrib,
		"Isha " + m.times.Isha,
	}
	return style.Render("🕌 "+strings.Join(parts, "  ")) + m.dimStyle().Render("  ("+m.config.City+")")
}

// rowSpan is a block's horizontal occupation of one timeline row
type rowSpan struct {
	left, right int
	laid        timeline.Laid
	rel         int // row offset inside the block
	height      int
}

// renderTimelineRow composites one row: gutter, background (hour grid,
// segment bands, now line) and the block spans covering it
func (m Model) renderTimelineRow(row int) string {
	// Both shapes are exactly gutterWidth cells; blockSpan and hitTest
	// assume the field starts at that column on every row.
	hh := m.config.HourHeight
	var gutter string
	if row%hh == 0 {
		gutter = fmt.Sprintf("%8s ┤", timeutil.To12Hour(row/hh*60))
	} else {
		gutter = strings.Repeat(" ", gutterWidth-1) + "│"
	}
	out := m.dimStyle().Render(gutter)

	// Collect covering blocks sorted by horizontal position. Layout
	// guarantees spans in a row never overlap.
	var spans []rowSpan
	for _, l := range m.laid {
		top, height := m.blockRows(l)
		if row < top || row >= top+height {
			continue
		}
		left, right := m.blockSpan(l)
		spans = append(spans, rowSpan{left: left, right: right, laid: l, rel: row - top, height: height})
	}
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].left < spans[j-1].left; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}

	cursor := gutterWidth
	for _, s := range spans {
		if s.left > cursor {
			out += m.renderBackground(row, cursor, s.left)
		}
		out += m.renderBlockRow(s)
		cursor = s.right
	}
	if cursor < m.width {
		out += m.renderBackground(row, cursor, m.width)
	}
	return out
}

// renderBackground fills [from,to) of a row with the grid texture:
// segment band shading, the band label on its first row, the hour
// rule, and the now line when viewing today
func (m Model) renderBackground(row, from, to int) string {
	width := to - from
	if width <= 0 {
		return ""
	}
	hh := m.config.HourHeight

	if m.viewDate == timeutil.TodayISO() {
		now := time.Now()
		nowRow := (now.Hour()*60 + now.Minute()) * hh / 60
		if row == nowRow {
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.styles.NowLineColor)).
				Render(strings.Repeat("━", width))
		}
	}

	fill := " "
	if row%hh == 0 {
		fill = "╌"
	}
	text := strings.Repeat(fill, width)

	// Band label on the first row of each segment.
	if m.segments != nil {
		for _, id := range prayer.SegmentIDs {
			seg, ok := m.segments[id]
			if !ok {
				continue
			}
			if seg.StartMin*hh/60 != row {
				continue
			}
			label := prayer.SegmentLabels[id]
			if lw := runewidth.StringWidth(label); lw+1 <= width {
				text = strings.Repeat(fill, width-lw-1) + label + fill
			}
			break
		}
	}

	return m.dimStyle().Render(text)
}

// renderBlockRow draws one row of a block at its span width
func (m Model) renderBlockRow(s rowSpan) string {
	width := s.right - s.left
	l := s.laid
	b := m.renderBlockFor(l.ID)

	color := m.styles.PrayerColor
	activity, icon := "", ""
	var tasks []database.Task
	if b != nil {
		activity, icon = b.Activity, b.Icon
		tasks = b.Tasks
		if !l.Prayer {
			color = m.typeColor(b.Type)
		}
	}

	dragged := false
	ovLabel := ""
	if ov, ok := m.controller.Override(); ok && ov.BlockID == l.ID {
		dragged = true
		ovLabel = ov.Label
	}

	var text string
	switch {
	case s.rel == 0 && dragged:
		text = "▸ " + ovLabel
	case s.rel == 0 && s.height == 1:
		text = timeutil.MinutesToTime(float64(l.StartMin)) + " " + strings.TrimSpace(icon+" "+activity)
	case s.rel == 0:
		text = timeutil.MinutesToTime(float64(l.StartMin)) + " - " + timeutil.MinutesToTime(float64(l.EndMin))
	case s.rel == 1:
		text = strings.TrimSpace(icon + " " + activity)
	default:
		taskIdx := s.rel - 2
		if taskIdx >= 0 && taskIdx < len(tasks) && s.rel < s.height-1 {
			box := "[ ] "
			if tasks[taskIdx].Done {
				box = "[✓] "
			}
			text = " " + box + tasks[taskIdx].Text
		}
	}

	text = runewidth.Truncate(text, width, "…")
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor)).
		Background(lipgloss.Color(color))
	if dragged {
		style = style.Bold(true)
	}
	if l.Prayer {
		style = style.Italic(true)
	}
	return style.Render(text)
}

// renderStatusLine shows the viewport position under the timeline
func (m Model) renderStatusLine() string {
	topMin := m.rowToMinutes(m.scroll)
	botMin := m.rowToMinutes(m.scroll + m.timelineRows())
	if botMin > timeutil.MinutesPerDay {
		botMin = timeutil.MinutesPerDay
	}
	return m.dimStyle().Render(fmt.Sprintf("viewing %s – %s  •  %d block(s)",
		timeutil.To12Hour(topMin), timeutil.To12Hour(botMin), len(m.rawBlocks)))
}

// renderHelpBar is the single-line hint footer
func (m Model) renderHelpBar() string {
	hints := []string{
		"a add", "click create", "drag move", "p plan", "c calendar",
		"←/→ day", "h today", "l location", "ctrl+b help", "q quit",
	}
	return m.dimStyle().Render(strings.Join(hints, " │ "))
}

// renderCalendar draws the month view with plan coverage tinting
func (m Model) renderCalendar() string {
	var b strings.Builder
	cursor := timeutil.ParseISO(m.calendarDate)
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.Local)

	b.WriteString(m.titleStyle().Render(first.Format("January 2006")) + "\n\n")
	b.WriteString(m.dimStyle().Render(" Mo  Tu  We  Th  Fr  Sa  Su") + "\n")

	today := timeutil.TodayISO()
	mondayIdx := func(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }
	line := strings.Repeat("    ", mondayIdx(first))
	daysInMonth := first.AddDate(0, 1, -1).Day()

	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(cursor.Year(), cursor.Month(), day, 0, 0, 0, 0, time.Local)
		iso := timeutil.ToISO(d)
		cell := fmt.Sprintf(" %2d ", day)

		style := lipgloss.NewStyle()
		for _, p := range m.plans {
			if timeutil.DateInRange(iso, p.StartDate, p.EndDate) {
				style = style.Foreground(lipgloss.Color(p.Color))
				break
			}
		}
		if iso == today {
			style = style.Underline(true)
		}
		if iso == m.calendarDate {
			style = style.
				Background(lipgloss.Color(m.styles.SelectedBgColor)).
				Foreground(lipgloss.Color(m.styles.SelectedTextColor))
		}
		line += style.Render(cell)

		if mondayIdx(d) == 6 {
			b.WriteString(line + "\n")
			line = ""
		}
	}
	if line != "" {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.titleStyle().Render("Plans") + "\n")
	if len(m.plans) == 0 {
		b.WriteString(m.dimStyle().Render("  none yet — press 'p' in day view") + "\n")
	}
	for _, p := range m.plans {
		mark := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("■")
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", mark, p.Label,
			m.dimStyle().Render(timeutil.FormatDateRange(p.StartDate, p.EndDate))))
	}

	b.WriteString("\n" + m.dimStyle().Render("arrows move │ enter open day │ c close │ q quit"))
	return b.String()
}

func (m Model) renderForm(title string, rows []string, hint string) string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render(title) + "\n\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	b.WriteString("\n" + m.dimStyle().Render(hint))
	return b.String()
}

func (m Model) renderBlockEditor() string {
	rows := []string{
		"  Activity: " + m.activityInput.View(),
		"  Start:    " + m.timeInput.View(),
		"  Duration: " + m.durationInput.View(),
		"  Type:     " + m.typeInput.View(),
		"  Icon:     " + m.iconInput.View(),
		"",
		"  Sub-tasks:",
	}
	if m.editingBlock != nil {
		for _, t := range m.editingBlock.Tasks {
			box := "[ ]"
			if t.Done {
				box = "[✓]"
			}
			rows = append(rows, "    "+box+" "+t.Text)
		}
	}
	rows = append(rows, "  New task: "+m.taskInput.View())
	return m.renderForm("Edit block",
		rows,
		"tab next │ enter save (on task field: add) │ ctrl+x drop last task │ ctrl+d delete block │ esc cancel")
}

func (m Model) renderPlanEditor() string {
	return m.renderForm("New plan",
		[]string{
			"  Label: " + m.planLabelInput.View(),
			"  Color: " + m.planColorInput.View(),
			"  Start: " + m.planStartInput.View(),
			"  End:   " + m.planEndInput.View(),
		},
		"tab next │ enter save │ esc cancel")
}

func (m Model) renderLocationForm() string {
	return m.renderForm("Prayer time location",
		[]string{
			"  City:    " + m.cityInput.View(),
			"  Country: " + m.countryInput.View(),
		},
		"enter apply │ esc cancel")
}

func (m Model) renderDeleteConfirm() string {
	target := "this block"
	if m.deletePlanArm && m.plan != nil {
		target = "plan \"" + m.plan.Label + "\" and all its days"
	} else if b := m.blockByID(m.deleteTarget); b != nil {
		target = "\"" + b.Activity + "\""
	}
	return m.renderForm("Delete",
		[]string{"  Delete " + target + "?"},
		"y confirm │ n cancel")
}

func (m Model) renderContextMenu() string {
	name := ""
	if b := m.blockByID(m.ctxBlockID); b != nil {
		name = b.Activity
	}
	return m.renderForm("Block: "+name,
		[]string{"  e  edit", "  d  delete"},
		"esc close")
}

func (m Model) renderHelp() string {
	rows := []string{}
	for _, h := range [][2]string{
		{"a", "add a block at 08:00"},
		{"click empty space", "create a block there"},
		{"drag block", "move it (5-minute snapping)"},
		{"drag top/bottom row", "resize it (15-minute floor)"},
		{"click sub-task", "toggle done"},
		{"right-click block", "context menu"},
		{"←/→", "previous / next day"},
		{"1-7", "jump to weekday (Monday = 1)"},
		{"h", "jump to today"},
		{"c", "calendar month view"},
		{"p / P", "new plan / delete plan"},
		{"l", "prayer time location"},
		{"↑/↓ or j/k, wheel", "scroll the timeline"},
		{"q", "quit"},
	} {
		rows = append(rows, fmt.Sprintf("  %-22s %s", h[0], h[1]))
	}
	return m.renderForm("Keys", rows, "any key to close")
}

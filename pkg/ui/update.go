package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"yawm/pkg/database"
	"yawm/pkg/prayer"
	"yawm/pkg/timeline"
	"yawm/pkg/timeutil"
)

// Update handles all incoming messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case prayerTimesMsg:
		m.loadingTimes = false
		if msg.key != prayer.CacheKey(m.viewDate, m.config.City, m.config.Country) {
			return m, nil // stale: the view moved on while fetching
		}
		if msg.err != nil {
			m.times = nil
			m.segments = nil
		} else {
			m.times = msg.times
			m.segments = prayer.ComputeSegments(msg.times)
		}
		m.relayout()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			return m.handleNormalKeys(msg)
		case BlockEditMode:
			return m.handleBlockEditKeys(msg)
		case PlanEditMode:
			return m.handlePlanEditKeys(msg)
		case DeleteConfirmMode:
			return m.handleDeleteConfirmKeys(msg)
		case ContextMenuMode:
			return m.handleContextMenuKeys(msg)
		case LocationMode:
			return m.handleLocationKeys(msg)
		case HelpViewMode:
			m.mode = NormalMode
			return m, nil
		}
	}
	return m, nil
}

// handleNormalKeys processes keys in normal (navigation) mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	if m.viewMode == database.CalendarViewMode {
		return m.handleCalendarKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.mode = HelpViewMode
		return m, nil

	case key.Matches(msg, m.keyMap.AddBlock):
		m.createBlockAt(8 * 60)
		return m, nil

	case key.Matches(msg, m.keyMap.NewPlan):
		m.mode = PlanEditMode
		m.resetInputs()
		m.planStartInput.SetValue(m.viewDate)
		m.planEndInput.SetValue(timeutil.AddDays(m.viewDate, 6))
		m.focusInput(0)
		return m, nil

	case key.Matches(msg, m.keyMap.DeletePlan):
		if m.plan != nil {
			m.mode = DeleteConfirmMode
			m.deletePlanArm = true
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PrevDay):
		cmd := m.changeDay(-1)
		return m, cmd

	case key.Matches(msg, m.keyMap.NextDay):
		cmd := m.changeDay(1)
		return m, cmd

	case key.Matches(msg, m.keyMap.JumpToToday):
		m.viewDate = timeutil.TodayISO()
		m.scroll = 0
		m.times = nil
		m.segments = nil
		m.reloadDay()
		cmd := m.fetchPrayerTimes()
		return m, cmd

	case key.Matches(msg, m.keyMap.WeekdayJump):
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= 7 {
			cmd := m.jumpToWeekday(n - 1)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleCalendarView):
		m.viewMode = database.CalendarViewMode
		m.calendarDate = m.viewDate
		return m, nil

	case key.Matches(msg, m.keyMap.SetLocation):
		m.mode = LocationMode
		m.resetInputs()
		m.cityInput.SetValue(m.config.City)
		m.countryInput.SetValue(m.config.Country)
		m.focusInput(0)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollUp):
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		if m.scroll < m.totalRows()-m.timelineRows() {
			m.scroll++
		}
		return m, nil
	}
	return m, nil
}

// handleCalendarKeys navigates the month view
func (m Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.ToggleCalendarView):
		m.viewMode = database.DayViewMode
		return m, nil
	case key.Matches(msg, m.keyMap.CalendarLeft):
		m.calendarDate = timeutil.AddDays(m.calendarDate, -1)
		return m, nil
	case key.Matches(msg, m.keyMap.CalendarRight):
		m.calendarDate = timeutil.AddDays(m.calendarDate, 1)
		return m, nil
	case key.Matches(msg, m.keyMap.CalendarUp):
		m.calendarDate = timeutil.AddDays(m.calendarDate, -7)
		return m, nil
	case key.Matches(msg, m.keyMap.CalendarDown):
		m.calendarDate = timeutil.AddDays(m.calendarDate, 7)
		return m, nil
	case key.Matches(msg, m.keyMap.CalendarSelect):
		m.viewDate = m.calendarDate
		m.viewMode = database.DayViewMode
		m.scroll = 0
		m.times = nil
		m.segments = nil
		m.reloadDay()
		cmd := m.fetchPrayerTimes()
		return m, cmd
	}
	if msg.String() == "esc" {
		m.viewMode = database.DayViewMode
	}
	return m, nil
}

// handleBlockEditKeys processes the block editor form
func (m Model) handleBlockEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeBlockEditor(false)
		return m, nil
	case "tab", "down":
		m.focusNextInput()
		return m, nil
	case "shift+tab", "up":
		m.focusPreviousInput()
		return m, nil
	case "ctrl+x":
		m.removeLastTask()
		return m, nil
	case "ctrl+d":
		if m.editingBlock != nil {
			m.deleteTarget = m.editingBlock.ID
			m.deletePlanArm = false
			m.mode = DeleteConfirmMode
		}
		return m, nil
	case "enter":
		// Enter on the task field adds a task and keeps editing;
		// on any other field it saves and closes.
		inputs := m.formInputs()
		if m.activeInput == len(inputs)-1 && m.taskInput.Focused() && m.taskInput.Value() != "" {
			m.addTaskFromInput()
			return m, nil
		}
		m.closeBlockEditor(true)
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// handlePlanEditKeys processes the plan creation form
func (m Model) handlePlanEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.resetInputs()
		return m, nil
	case "tab", "down":
		m.focusNextInput()
		return m, nil
	case "shift+tab", "up":
		m.focusPreviousInput()
		return m, nil
	case "enter":
		if m.activeInput < len(m.formInputs())-1 {
			m.focusNextInput()
			return m, nil
		}
		m.savePlanFromInputs()
		if m.err == nil {
			m.mode = NormalMode
			m.resetInputs()
		}
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// handleDeleteConfirmKeys processes the y/n delete confirmation
func (m Model) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.deletePlanArm && m.plan != nil {
			if err := database.DeletePlan(m.db, m.plan.ID); err != nil {
				m.err = err
			}
			m.reloadDay()
		} else if m.deleteTarget != "" {
			m.deleteBlock(m.deleteTarget)
			if m.editingBlock != nil && m.editingBlock.ID == m.deleteTarget {
				m.newBlockID = ""
				m.editingBlock = nil
				m.resetInputs()
			}
		}
		m.deleteTarget = ""
		m.deletePlanArm = false
		m.mode = NormalMode
		return m, nil
	case "n", "N", "esc":
		m.deleteTarget = ""
		m.deletePlanArm = false
		if m.editingBlock != nil {
			m.mode = BlockEditMode
		} else {
			m.mode = NormalMode
		}
		return m, nil
	}
	return m, nil
}

// handleContextMenuKeys processes the right-click block menu
func (m Model) handleContextMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		if b := m.blockByID(m.ctxBlockID); b != nil {
			m.openBlockEditor(b)
		} else {
			m.mode = NormalMode
		}
		m.ctxBlockID = ""
		return m, nil
	case "d":
		m.deleteTarget = m.ctxBlockID
		m.deletePlanArm = false
		m.ctxBlockID = ""
		m.mode = DeleteConfirmMode
		return m, nil
	case "esc", "q":
		m.ctxBlockID = ""
		m.mode = NormalMode
		return m, nil
	}
	return m, nil
}

// handleLocationKeys processes the prayer location form
func (m Model) handleLocationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.resetInputs()
		return m, nil
	case "tab", "down":
		m.focusNextInput()
		return m, nil
	case "shift+tab", "up":
		m.focusPreviousInput()
		return m, nil
	case "enter":
		if m.activeInput < len(m.formInputs())-1 {
			m.focusNextInput()
			return m, nil
		}
		city := m.cityInput.Value()
		country := m.countryInput.Value()
		if city != "" {
			m.config.City = city
		}
		if country != "" {
			m.config.Country = country
		}
		m.mode = NormalMode
		m.resetInputs()
		m.times = nil
		m.segments = nil
		m.relayout()
		cmd := m.fetchPrayerTimes()
		return m, cmd
	}
	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards a key to the active text input
func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := m.formInputs()
	if len(inputs) == 0 || m.activeInput >= len(inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	var updated textinput.Model
	updated, cmd = inputs[m.activeInput].Update(msg)
	*inputs[m.activeInput] = updated
	return m, cmd
}

// handleMouse drives the timeline gesture controller from terminal
// mouse events. Only the day view in normal mode takes mouse input.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != NormalMode || m.viewMode != database.DayViewMode {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.scroll < m.totalRows()-m.timelineRows() {
			m.scroll++
		}
		return m, nil
	}

	hit := m.hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonRight {
			if hit.kind == hitBlock && !hit.prayer {
				m.ctxBlockID = hit.blockID
				m.mode = ContextMenuMode
			}
			return m, nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.emptyPressRow, m.emptyPressX = -1, -1
		switch hit.kind {
		case hitTaskRow:
			m.toggleTask(hit.blockID, hit.taskIdx)
		case hitBlock:
			if hit.prayer {
				return m, nil // prayer markers are immovable
			}
			for _, l := range m.laid {
				if l.ID != hit.blockID {
					continue
				}
				m.controller.PointerDown(l.ID, float64(hit.row), timeline.Geometry{
					Top:      l.Top,
					Height:   l.Height,
					StartMin: l.StartMin,
					Duration: l.Duration,
				}, hit.mode, timeline.PointerMouse)
				break
			}
		case hitEmpty:
			m.emptyPressRow, m.emptyPressX = hit.row, hit.x
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.controller.State() != timeline.StateIdle {
			// An active gesture owns the pointer: track its height from
			// the raw event even when x wanders into the gutter or the
			// chrome, otherwise a sideways wobble reads as row 0.
			m.controller.PointerMove(m.gestureRow(msg.Y))
		} else if m.emptyPressRow != -1 && (hit.row != m.emptyPressRow || hit.x != m.emptyPressX) {
			m.emptyPressRow = -1 // drifted off: not a click
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.controller.State() != timeline.StateIdle {
			m.controller.PointerUp(m.gestureRow(msg.Y))
			m.applyCommits()
		} else if m.emptyPressRow != -1 && hit.kind == hitEmpty &&
			hit.row == m.emptyPressRow && hit.x == m.emptyPressX {
			m.createBlockAt(m.rowToMinutes(hit.row))
		}
		m.emptyPressRow, m.emptyPressX = -1, -1
		return m, nil
	}

	return m, nil
}

package ui

import (
	"database/sql"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"yawm/pkg/config"
	"yawm/pkg/database"
	"yawm/pkg/keymaps"
	"yawm/pkg/prayer"
	"yawm/pkg/timeline"
	"yawm/pkg/timeutil"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	BlockEditMode
	PlanEditMode
	DeleteConfirmMode
	ContextMenuMode
	LocationMode
	HelpViewMode
)

// commitKind tags pending mutations from the gesture controller
type commitKind int

const (
	commitTimeChange commitKind = iota
	commitResize
	commitTap
)

type pendingCommit struct {
	kind     commitKind
	blockID  string
	newTime  string
	duration int
}

// Model represents the application state
type Model struct {
	db            *sql.DB
	width, height int
	err           error

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap

	// View state
	viewMode database.ViewMode
	viewDate string // ISO date being displayed
	scroll   int    // timeline scroll offset in rows

	// Data for the viewed day
	plans       []database.Plan
	plan        *database.Plan // plan covering viewDate, nil if none
	rawBlocks   []database.Block
	customTypes map[string]string

	// Prayer state
	prayerClient *prayer.Client
	times        *prayer.Times
	segments     prayer.Segments
	loadingTimes bool

	// Timeline state
	prayerBlocks []database.Block
	laid         []timeline.Laid
	controller *timeline.Controller
	commits    *[]pendingCommit
	// Press position of a click that started on empty grid space,
	// -1 when none; a release at the same spot creates a block there.
	emptyPressRow int
	emptyPressX   int

	// Editor state
	mode          InputMode
	editingBlock  *database.Block
	newBlockID    string // transient id of an unsaved click-created block
	deleteTarget  string // block id pending delete confirmation
	deletePlanArm bool   // true when the confirmation targets the plan
	ctxBlockID    string // block under the context menu

	activityInput textinput.Model
	timeInput     textinput.Model
	durationInput textinput.Model
	typeInput     textinput.Model
	iconInput     textinput.Model
	taskInput     textinput.Model

	planLabelInput textinput.Model
	planColorInput textinput.Model
	planStartInput textinput.Model
	planEndInput   textinput.Model

	cityInput    textinput.Model
	countryInput textinput.Model

	activeInput int

	// Calendar view state
	calendarDate string // ISO date of the calendar cursor
}

// NewModel creates a new UI model with the provided configuration
func NewModel(db *sql.DB, cfg config.Config, styles config.Styles) Model {
	if cfg.HourHeight < 1 {
		cfg.HourHeight = 3
	}

	newInput := func(placeholder string, width int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Width = width
		return in
	}

	today := timeutil.TodayISO()
	commits := &[]pendingCommit{}

	m := Model{
		db:            db,
		config:        cfg,
		styles:        styles,
		keyMap:        keymaps.BuildKeyMap(cfg.KeyMap),
		mode:          NormalMode,
		viewMode:      database.DayViewMode,
		viewDate:      today,
		prayerClient:  prayer.NewClient(prayer.NewCache(prayer.DefaultCacheCapacity)),
		customTypes:   map[string]string{},
		commits:       commits,
		emptyPressRow: -1,

		activityInput: newInput("Activity", 40),
		timeInput:     newInput("Start time (HH:MM)", 40),
		durationInput: newInput("Duration in minutes", 40),
		typeInput:     newInput("Type (work, study, sport, ...)", 40),
		iconInput:     newInput("Icon", 40),
		taskInput:     newInput("Add sub-task (enter to add, ctrl+x removes last)", 48),

		planLabelInput: newInput("Plan label", 40),
		planColorInput: newInput("Color (#2d8a4e)", 40),
		planStartInput: newInput("Start date (YYYY-MM-DD)", 40),
		planEndInput:   newInput("End date (YYYY-MM-DD)", 40),

		cityInput:    newInput("City", 40),
		countryInput: newInput("Country", 40),

		calendarDate: today,
	}

	m.controller = timeline.NewController(timeline.Config{
		HourHeight:      float64(cfg.HourHeight),
		MoveThreshold:   0, // terminal cells are coarse; any travel is a drag
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

	// Load initial data
	m.reloadDay()

	return m
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return m.fetchPrayerTimes()
}

// resetInputs clears all form inputs
func (m *Model) resetInputs() {
	for _, in := range []*textinput.Model{
		&m.activityInput, &m.timeInput, &m.durationInput, &m.typeInput,
		&m.iconInput, &m.taskInput, &m.planLabelInput, &m.planColorInput,
		&m.planStartInput, &m.planEndInput, &m.cityInput, &m.countryInput,
	} {
		in.Reset()
		in.Blur()
	}
	m.activeInput = 0
}

// formInputs returns the input cycle for the current editor mode
func (m *Model) formInputs() []*textinput.Model {
	switch m.mode {
	case BlockEditMode:
		return []*textinput.Model{
			&m.activityInput, &m.timeInput, &m.durationInput,
			&m.typeInput, &m.iconInput, &m.taskInput,
		}
	case PlanEditMode:
		return []*textinput.Model{
			&m.planLabelInput, &m.planColorInput,
			&m.planStartInput, &m.planEndInput,
		}
	case LocationMode:
		return []*textinput.Model{&m.cityInput, &m.countryInput}
	}
	return nil
}

// focusInput focuses the input at index and blurs the rest
func (m *Model) focusInput(idx int) {
	inputs := m.formInputs()
	if len(inputs) == 0 {
		return
	}
	if idx < 0 {
		idx = len(inputs) - 1
	}
	m.activeInput = idx % len(inputs)
	for i, in := range inputs {
		if i == m.activeInput {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// focusNextInput cycles through the form inputs
func (m *Model) focusNextInput() {
	m.focusInput(m.activeInput + 1)
}

// focusPreviousInput cycles backwards
func (m *Model) focusPreviousInput() {
	m.focusInput(m.activeInput - 1)
}

package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":           {"ctrl+b", "show/hide commands"},
	"QuitApp":            {"q", "quit"},
	"AddBlock":           {"a", "add block at next free slot"},
	"NewPlan":            {"p", "create plan"},
	"DeletePlan":         {"P", "delete covering plan"},
	"PrevDay":            {"left", "previous day"},
	"NextDay":            {"right", "next day"},
	"JumpToToday":        {"h", "jump to today"},
	"WeekdayJump":        {"1,2,3,4,5,6,7", "jump to weekday of this week"},
	"ToggleCalendarView": {"c", "toggle calendar view"},
	"CalendarLeft":       {"left", "move left in calendar"},
	"CalendarRight":      {"right", "move right in calendar"},
	"CalendarUp":         {"up", "move up in calendar"},
	"CalendarDown":       {"down", "move down in calendar"},
	"CalendarSelect":     {"enter", "select day in calendar"},
	"SetLocation":        {"l", "set prayer-time location"},
	"ScrollUp":           {"up,k", "scroll timeline up"},
	"ScrollDown":         {"down,j", "scroll timeline down"},
}

type KeyMap struct {
	ShowHelp           key.Binding
	QuitApp            key.Binding
	AddBlock           key.Binding
	NewPlan            key.Binding
	DeletePlan         key.Binding
	PrevDay            key.Binding
	NextDay            key.Binding
	JumpToToday        key.Binding
	WeekdayJump        key.Binding
	ToggleCalendarView key.Binding
	CalendarLeft       key.Binding
	CalendarRight      key.Binding
	CalendarUp         key.Binding
	CalendarDown       key.Binding
	CalendarSelect     key.Binding
	SetLocation        key.Binding
	ScrollUp           key.Binding
	ScrollDown         key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[action]; exists && override != "" {
			keyStr = override
		}

		switch action {
		case "ShowHelp":
			km.ShowHelp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "QuitApp":
			km.QuitApp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddBlock":
			km.AddBlock = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "NewPlan":
			km.NewPlan = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "DeletePlan":
			km.DeletePlan = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "PrevDay":
			km.PrevDay = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "NextDay":
			km.NextDay = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "JumpToToday":
			km.JumpToToday = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "WeekdayJump":
			km.WeekdayJump = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleCalendarView":
			km.ToggleCalendarView = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CalendarLeft":
			km.CalendarLeft = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CalendarRight":
			km.CalendarRight = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CalendarUp":
			km.CalendarUp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CalendarDown":
			km.CalendarDown = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CalendarSelect":
			km.CalendarSelect = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "SetLocation":
			km.SetLocation = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ScrollUp":
			km.ScrollUp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ScrollDown":
			km.ScrollDown = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}

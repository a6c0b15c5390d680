package database

import (
	"time"
)

// Plan represents a date-ranged container holding a 7-day routine
type Plan struct {
	ID           string    `db:"id" json:"id"`
	Label        string    `db:"label" json:"label"`
	Color        string    `db:"color" json:"color"`
	StartDate    string    `db:"startdate" json:"start_date"` // YYYY-MM-DD
	EndDate      string    `db:"enddate" json:"end_date"`     // YYYY-MM-DD
	Created      time.Time `db:"created" json:"created"`
	LastModified time.Time `db:"lastmodified" json:"last_modified"`
}

// Block represents a single scheduled activity within a routine day.
// When Segment is non-empty, Time is derived from the prayer segment
// start plus OffsetMinutes on every render and is not ground truth;
// committing a drag or resize clears Segment and zeroes OffsetMinutes.
type Block struct {
	ID            string `json:"id"`
	Time          string `json:"time"` // HH:MM, 24-hour
	Duration      int    `json:"duration"`
	Segment       string `json:"segment,omitempty"`
	OffsetMinutes int    `json:"offsetMinutes,omitempty"`
	Activity      string `json:"activity"`
	Type          string `json:"type"`
	Icon          string `json:"icon"`
	Tasks         []Task `json:"tasks,omitempty"`
}

// Task is a sub-item checkbox inside a block
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// CustomType is a user-defined block category with a display color
type CustomType struct {
	Key   string `db:"typekey" json:"key"`
	Color string `db:"color" json:"color"`
}

// ViewMode represents the current view mode
type ViewMode int

const (
	DayViewMode      ViewMode = iota // Default - 24h timeline for one day
	CalendarViewMode                 // Month grid
)

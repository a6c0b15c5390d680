package timeline

import (
	"math"
	"time"

	"yawm/pkg/timeutil"
)

// DragMode identifies what part of a block a gesture grabbed.
type DragMode int

const (
	DragMove   DragMode = iota // block body: shift start, keep duration
	DragTop                    // top handle: move start, keep end
	DragBottom                 // bottom handle: keep start, move end
)

// PointerKind distinguishes mouse-class pointers (drag starts
// immediately) from touch-class pointers (drag starts after a hold).
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// State is the gesture state machine phase.
type State int

const (
	StateIdle        State = iota
	StatePendingHold       // touch down, hold timer armed, no drag yet
	StateDragging
)

// Config holds the tunable gesture constants.
type Config struct {
	HourHeight      float64       // units per hour, must match the layout pass
	MoveThreshold   float64       // units of travel before a press counts as a drag
	HoldDelay       time.Duration // touch long-press duration before a drag activates
	MinDuration     int           // minutes, resize floor
	MinVisualHeight float64       // units, visual resize floor
}

// DefaultConfig mirrors the constants of the web-style interaction:
// 60px hours, 4px threshold, 300ms hold, 15-minute floor, 24px floor.
func DefaultConfig() Config {
	return Config{
		HourHeight:      60,
		MoveThreshold:   4,
		HoldDelay:       300 * time.Millisecond,
		MinDuration:     15,
		MinVisualHeight: 24,
	}
}

// Callbacks receive the outcome of a finished gesture. Exactly one
// callback fires per pointer-up: TimeChange or Resize for a drag that
// moved, Tap for one that did not. Cancel paths fire nothing.
type Callbacks struct {
	// TimeChange commits a move: the block's new start time.
	TimeChange func(blockID, newTime string)
	// Resize commits a top or bottom resize: new start time + duration.
	Resize func(blockID, newTime string, newDuration int)
	// Tap is a press-and-release without meaningful travel; the UI
	// opens the block editor.
	Tap func(blockID string)
}

// Geometry is the committed placement of the grabbed block, taken from
// the layout pass at pointer-down.
type Geometry struct {
	Top      float64
	Height   float64
	StartMin int
	Duration int
}

// Override is the ephemeral visual state of an active drag. The
// renderer consults it instead of the committed geometry; it never
// leaks into the model and disappears the moment the gesture ends.
type Override struct {
	BlockID string
	Top     float64
	Height  float64
	Label   string // live "HH:MM - HH:MM" range
}

// Controller runs the per-block drag/resize state machine. One
// gesture is active at a time: the single-pointer model means a new
// pointer-down simply replaces any stale gesture.
type Controller struct {
	cfg Config
	cb  Callbacks

	state State
	gen   int // gesture generation, invalidates in-flight hold timers

	blockID string
	mode    DragMode
	kind    PointerKind
	startY  float64
	deltaY  float64
	moved   bool
	geom    Geometry
}

// NewController creates a controller with the given config and commit
// callbacks.
func NewController(cfg Config, cb Callbacks) *Controller {
	if cfg.HourHeight <= 0 {
		cfg.HourHeight = DefaultConfig().HourHeight
	}
	if cfg.MinDuration <= 0 {
		cfg.MinDuration = DefaultConfig().MinDuration
	}
	return &Controller{cfg: cfg, cb: cb}
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// ActiveBlock returns the id of the block owning the current gesture,
// or "" when idle.
func (c *Controller) ActiveBlock() string {
	if c.state == StateIdle {
		return ""
	}
	return c.blockID
}

// PointerDown begins a gesture on a block. For touch pointers it arms
// the long-press hold instead of dragging immediately; the caller must
// schedule HoldFired(gen) after Config.HoldDelay when armHold is true.
// Grabbing a resize handle counts as moved from the start: handles
// have no tap meaning.
func (c *Controller) PointerDown(blockID string, y float64, geom Geometry, mode DragMode, kind PointerKind) (armHold bool, gen int) {
	c.gen++
	c.blockID = blockID
	c.mode = mode
	c.kind = kind
	c.startY = y
	c.deltaY = 0
	c.moved = mode != DragMove
	c.geom = geom

	if kind == PointerTouch {
		c.state = StatePendingHold
		return true, c.gen
	}
	c.state = StateDragging
	return false, c.gen
}

// HoldFired activates a pending touch drag. A generation mismatch
// means the owning gesture already ended; the stale timer is ignored.
// Returns true when the drag activated (the caller may give haptic
// feedback).
func (c *Controller) HoldFired(gen int) bool {
	if c.state != StatePendingHold || gen != c.gen {
		return false
	}
	c.state = StateDragging
	return true
}

// PointerMove tracks pointer travel. Movement while a touch hold is
// still pending cancels the gesture — the finger is scrolling, not
// dragging.
func (c *Controller) PointerMove(y float64) {
	switch c.state {
	case StatePendingHold:
		c.reset()
	case StateDragging:
		c.deltaY = y - c.startY
		if !c.moved && math.Abs(c.deltaY) > c.cfg.MoveThreshold {
			c.moved = true
		}
	}
}

// PointerUp ends the gesture. The visual override is dropped
// unconditionally; then exactly one callback fires: Tap for a press
// that never crossed the movement threshold (including a touch tap
// released before the hold fired), otherwise the snapped, clamped
// commit for the drag mode.
func (c *Controller) PointerUp(y float64) {
	if c.state == StateIdle {
		return
	}
	blockID := c.blockID
	mode := c.mode
	moved := c.moved
	geom := c.geom
	pendingTap := c.state == StatePendingHold

	if c.state == StateDragging {
		c.deltaY = y - c.startY
		if !moved && math.Abs(c.deltaY) > c.cfg.MoveThreshold {
			moved = true
		}
	}
	delta := c.deltaY
	c.reset()

	if pendingTap || !moved {
		if c.cb.Tap != nil {
			c.cb.Tap(blockID)
		}
		return
	}

	deltaMin := delta / c.cfg.HourHeight * 60
	startMin := float64(geom.StartMin)
	dur := float64(geom.Duration)

	switch mode {
	case DragMove:
		newMin := timeutil.Snap(startMin + deltaMin)
		if c.cb.TimeChange != nil {
			c.cb.TimeChange(blockID, timeutil.MinutesToTime(float64(newMin)))
		}
	case DragTop:
		newStart := timeutil.Snap(startMin + deltaMin)
		// End stays put; round the remaining span onto the grid.
		newDur := int(math.Round((startMin+dur-float64(newStart))/timeutil.SnapResolution)) * timeutil.SnapResolution
		newDur = c.clampDuration(newStart, newDur)
		if c.cb.Resize != nil {
			c.cb.Resize(blockID, timeutil.MinutesToTime(float64(newStart)), newDur)
		}
	case DragBottom:
		newDur := timeutil.Snap(dur + deltaMin)
		newDur = c.clampDuration(geom.StartMin, newDur)
		if c.cb.Resize != nil {
			c.cb.Resize(blockID, timeutil.MinutesToTime(startMin), newDur)
		}
	}
}

// PointerCancel aborts the gesture with no commit and restores the
// committed visuals.
func (c *Controller) PointerCancel() {
	c.reset()
}

// clampDuration enforces the 15-minute floor and keeps the block end
// inside the day.
func (c *Controller) clampDuration(startMin, dur int) int {
	if dur < c.cfg.MinDuration {
		dur = c.cfg.MinDuration
	}
	if startMin+dur > timeutil.MinutesPerDay {
		dur = timeutil.MinutesPerDay - startMin
		dur = (dur / timeutil.SnapResolution) * timeutil.SnapResolution
		if dur < c.cfg.MinDuration {
			dur = c.cfg.MinDuration
		}
	}
	return dur
}

// reset returns to Idle and invalidates any in-flight hold timer.
// Every up/cancel path goes through here so a block can never stay
// stuck in its dragging visuals.
func (c *Controller) reset() {
	c.gen++
	c.state = StateIdle
	c.blockID = ""
	c.deltaY = 0
	c.moved = false
}

// Override returns the live visual state for the dragged block, if a
// drag is active and past the movement threshold.
func (c *Controller) Override() (Override, bool) {
	if c.state != StateDragging || !c.moved {
		return Override{}, false
	}

	deltaMin := c.deltaY / c.cfg.HourHeight * 60
	startMin := float64(c.geom.StartMin)
	dur := float64(c.geom.Duration)
	minHeight := c.cfg.MinVisualHeight
	if floor := float64(c.cfg.MinDuration) / 60 * c.cfg.HourHeight; floor > minHeight {
		minHeight = floor
	}

	o := Override{BlockID: c.blockID, Top: c.geom.Top, Height: c.geom.Height}
	switch c.mode {
	case DragMove:
		o.Top = c.geom.Top + c.deltaY
		liveStart := float64(timeutil.Snap(startMin + deltaMin))
		o.Label = rangeLabel(liveStart, liveStart+dur)
	case DragTop:
		o.Top = c.geom.Top + c.deltaY
		o.Height = c.geom.Height - c.deltaY
		if o.Height < minHeight {
			o.Height = minHeight
		}
		liveStart := float64(timeutil.Snap(startMin + deltaMin))
		o.Label = rangeLabel(liveStart, startMin+dur)
	case DragBottom:
		o.Height = c.geom.Height + c.deltaY
		if o.Height < minHeight {
			o.Height = minHeight
		}
		liveDur := math.Max(float64(c.cfg.MinDuration), float64(timeutil.Snap(dur+deltaMin)))
		o.Label = rangeLabel(startMin, startMin+liveDur)
	}
	return o, true
}

func rangeLabel(start, end float64) string {
	if end > timeutil.MinutesPerDay {
		end = timeutil.MinutesPerDay
	}
	return timeutil.MinutesToTime(start) + " - " + timeutil.MinutesToTime(end)
}

package resize

import (
	"math"

	"github.com/go-logr/logr"
)

// State is the phase of a boundary's interaction.
type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Session is the transient state of one press on a handle.
type Session struct {
	StartPointerX   float64
	StartLeftWidth  int
	StartRightWidth int
	StartTableWidth int
	Dragging        bool
	PointerID       int
	HasPointer      bool
}

// Controller is the per-boundary state machine:
// Idle -> press -> Armed -> threshold -> Dragging -> release/cancel -> Idle.
type Controller struct {
	handle  *Handle
	surface Surface
	doc     *Document
	cm      ColumnMap
	cfg     Config
	log     logr.Logger

	session     *Session
	trackOff    []func()
	suppressOff func()
}

// State returns the controller's current phase.
func (c *Controller) State() State {
	switch {
	case c.session == nil:
		return Idle
	case c.session.Dragging:
		return Dragging
	default:
		return Armed
	}
}

// Mode is the resize mode the controller was attached with.
func (c *Controller) Mode() Mode { return c.cfg.Mode }

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Controller) press(ev *Event) {
	in, ok := inputOf(ev)
	if !ok || ev.Button != 0 {
		return
	}
	if c.session != nil {
		// A compatibility mouse event can follow the pointer event that
		// already started this session.
		return
	}
	if c.doc.mode.Active() {
		c.log.V(1).Info("refusing press while another column is being resized",
			"handle", c.handle.index, "holder", c.doc.mode.Holder().Index())
		return
	}

	c.session = &Session{
		StartPointerX: in.x,
		PointerID:     in.pointerID,
		HasPointer:    in.source == sourcePointer,
	}
	c.readStart()

	if c.session.HasPointer {
		if pc, ok := c.surface.(PointerCapturer); ok {
			if err := pc.CapturePointer(c.handle, in.pointerID); err != nil {
				c.log.V(2).Info("pointer capture failed", "handle", c.handle.index, "error", err.Error())
			}
		}
	}

	move, up, cancel := in.source.trackKinds()
	c.trackOff = append(c.trackOff, c.doc.On(move, c.move), c.doc.On(up, c.release))
	if cancel != "" {
		c.trackOff = append(c.trackOff, c.doc.On(cancel, c.release))
	}

	ev.PreventDefault()
	ev.StopPropagation()
}

func (c *Controller) move(ev *Event) {
	s := c.session
	if s == nil || !c.ownsEvent(ev) {
		return
	}
	delta := ev.X - s.StartPointerX
	if !s.Dragging {
		if math.Abs(delta) < float64(c.cfg.DragThreshold) {
			return
		}
		if !c.beginDrag() {
			return
		}
	}
	c.apply(int(math.Round(delta)))
	ev.PreventDefault()
}

func (c *Controller) release(ev *Event) {
	if c.session == nil || !c.ownsEvent(ev) {
		return
	}
	c.end()
}

func (c *Controller) ownsEvent(ev *Event) bool {
	s := c.session
	if s.HasPointer {
		return ev.PointerID == s.PointerID
	}
	return true
}

func (c *Controller) beginDrag() bool {
	if !c.doc.mode.Acquire(c) {
		return false
	}
	Freeze(c.surface, c.cm, c.cfg.MinWidth)
	c.readStart()
	c.session.Dragging = true
	c.handle.classes.add(DraggingClass)
	c.suppressOff = c.doc.OnCapture(Click, suppress)
	c.log.V(1).Info("column drag started", "handle", c.handle.index,
		"mode", string(c.cfg.Mode), "left", c.session.StartLeftWidth, "right", c.session.StartRightWidth)
	return true
}

// end returns the controller to Idle, releasing everything the session held.
func (c *Controller) end() {
	s := c.session
	if s == nil {
		return
	}
	if s.HasPointer {
		if pc, ok := c.surface.(PointerCapturer); ok && pc.HasPointerCapture(c.handle, s.PointerID) {
			if err := pc.ReleasePointer(c.handle, s.PointerID); err != nil {
				c.log.V(2).Info("pointer release failed", "handle", c.handle.index, "error", err.Error())
			}
		}
	}
	for _, off := range c.trackOff {
		off()
	}
	c.trackOff = nil
	if c.suppressOff != nil {
		c.suppressOff()
		c.suppressOff = nil
	}
	if s.Dragging {
		c.handle.classes.remove(DraggingClass)
		c.doc.mode.Release(c)
		c.log.V(1).Info("column drag ended", "handle", c.handle.index,
			"width", c.surface.ColumnWidth(c.handle.LeftColumn()))
	}
	c.session = nil
}

func (c *Controller) readStart() {
	s := c.session
	s.StartLeftWidth = c.surface.ColumnWidth(c.handle.LeftColumn())
	if r := c.handle.RightColumn(); r >= 0 {
		s.StartRightWidth = c.surface.ColumnWidth(r)
	} else {
		s.StartRightWidth = 0
	}
	s.StartTableWidth = roundedWidth(c.surface)
}

func (c *Controller) apply(delta int) {
	s := c.session
	resizeBoundary(c.surface, c.cm, c.handle, c.cfg, s.StartLeftWidth, s.StartRightWidth, s.StartTableWidth, delta)
}

func (c *Controller) key(ev *Event) {
	var dir int
	switch ev.Key {
	case KeyArrowLeft:
		dir = -1
	case KeyArrowRight:
		dir = 1
	default:
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
	if c.session != nil || c.doc.mode.Active() {
		return
	}
	step := c.cfg.KeyStep
	if ev.Shift {
		step = c.cfg.KeyLargeStep
	}
	left := c.surface.ColumnWidth(c.handle.LeftColumn())
	right := 0
	if r := c.handle.RightColumn(); r >= 0 {
		right = c.surface.ColumnWidth(r)
	}
	resizeBoundary(c.surface, c.cm, c.handle, c.cfg, left, right, roundedWidth(c.surface), dir*step)
}

// resizeBoundary applies delta to the boundary under the configured policy,
// starting from the given widths. Distribute falls back to shift on the last
// boundary.
func resizeBoundary(s Surface, cm ColumnMap, h *Handle, cfg Config, startLeft, startRight, startTable, delta int) {
	floor := cfg.MinWidth
	right := h.RightColumn()
	if cfg.Mode != ModeDistribute || right < 0 {
		left := max(floor, startLeft+delta)
		setColumn(s, cm, h.LeftColumn(), left)
		s.SetWidth(startTable + left - startLeft)
		return
	}

	total := startLeft + startRight
	if total < 2*floor {
		return
	}
	left := min(max(startLeft+delta, floor), total-floor)
	setColumn(s, cm, h.LeftColumn(), left)
	setColumn(s, cm, right, total-left)
}

// cancel ends an in-flight session without waiting for input.
func (c *Controller) cancel() {
	c.end()
}

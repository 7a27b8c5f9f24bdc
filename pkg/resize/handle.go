package resize

import "fmt"

// Handle is the grab target on the right edge of one header entry.
type Handle struct {
	entry     HeaderEntry
	index     int
	columns   int
	ctrl      *Controller
	listeners map[EventKind]func(*Event)
	classes   classSet
}

// Header returns the header entry the handle sits on.
func (h *Handle) Header() HeaderEntry { return h.entry }

// Index is the handle's position among the table's handles.
func (h *Handle) Index() int { return h.index }

// LeftColumn is the column directly left of the boundary.
func (h *Handle) LeftColumn() int { return h.entry.EndColumn }

// RightColumn is the column directly right of the boundary, or -1 for the
// table's last boundary.
func (h *Handle) RightColumn() int {
	if r := h.entry.EndColumn + 1; r < h.columns {
		return r
	}
	return -1
}

// Controller returns the state machine driving this handle.
func (h *Handle) Controller() *Controller { return h.ctrl }

// HasClass reports whether the handle carries class.
func (h *Handle) HasClass(class string) bool { return h.classes.has(class) }

// Wired reports whether the handle still has listeners attached.
func (h *Handle) Wired() bool { return len(h.listeners) > 0 }

// Dispatch delivers ev to the handle's listener for ev.Kind. It reports
// whether a listener ran.
func (h *Handle) Dispatch(ev *Event) bool {
	fn, ok := h.listeners[ev.Kind]
	if !ok {
		return false
	}
	fn(ev)
	return true
}

// Role, Orientation, ValueNow and Label describe the handle for assistive
// technology the way a separator widget is described.
func (h *Handle) Role() string        { return "separator" }
func (h *Handle) Orientation() string { return "vertical" }

func (h *Handle) ValueNow() int {
	if h.ctrl == nil {
		return 0
	}
	return h.ctrl.surface.ColumnWidth(h.LeftColumn())
}

func (h *Handle) Label() string {
	return fmt.Sprintf("Resize column %s", h.entry.Header.Label())
}

func (h *Handle) wire() {
	c := h.ctrl
	h.listeners = map[EventKind]func(*Event){
		PointerDown: c.press,
		MouseDown:   c.press,
		KeyDown:     c.key,
		Click:       suppress,
		DblClick:    suppress,
		DragStart:   suppress,
	}
}

func (h *Handle) unwire() {
	h.listeners = nil
}

func suppress(ev *Event) {
	ev.StopPropagation()
	ev.PreventDefault()
}

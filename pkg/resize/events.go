package resize

// EventKind names an input event.
type EventKind string

const (
	PointerDown   EventKind = "pointerdown"
	PointerMove   EventKind = "pointermove"
	PointerUp     EventKind = "pointerup"
	PointerCancel EventKind = "pointercancel"
	MouseDown     EventKind = "mousedown"
	MouseMove     EventKind = "mousemove"
	MouseUp       EventKind = "mouseup"
	KeyDown       EventKind = "keydown"
	Click         EventKind = "click"
	DblClick      EventKind = "dblclick"
	DragStart     EventKind = "dragstart"
)

// Key names understood by a handle.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Event is one input event delivered by the host.
type Event struct {
	Kind EventKind
	// X is the horizontal position of the pointer or mouse.
	X float64
	// PointerID identifies the pointer for pointer events.
	PointerID int
	// Button is the pressed button; 0 is the primary button.
	Button int
	Key    string
	Shift  bool
	Ctrl   bool
	Alt    bool
	Meta   bool

	stopped   bool
	prevented bool
}

func (e *Event) StopPropagation()       { e.stopped = true }
func (e *Event) PreventDefault()        { e.prevented = true }
func (e *Event) Stopped() bool          { return e.stopped }
func (e *Event) DefaultPrevented() bool { return e.prevented }

// inputSource distinguishes the two families of pointer-like input.
type inputSource int

const (
	sourcePointer inputSource = iota + 1
	sourceMouse
)

// input is the unified view of a pointer or mouse event.
type input struct {
	source    inputSource
	x         float64
	pointerID int
}

func inputOf(ev *Event) (input, bool) {
	switch ev.Kind {
	case PointerDown, PointerMove, PointerUp, PointerCancel:
		return input{source: sourcePointer, x: ev.X, pointerID: ev.PointerID}, true
	case MouseDown, MouseMove, MouseUp:
		return input{source: sourceMouse, x: ev.X}, true
	default:
		return input{}, false
	}
}

// trackKinds returns the document events that follow a press from source.
func (s inputSource) trackKinds() (move, up, cancel EventKind) {
	if s == sourcePointer {
		return PointerMove, PointerUp, PointerCancel
	}
	return MouseMove, MouseUp, ""
}

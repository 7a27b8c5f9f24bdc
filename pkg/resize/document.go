package resize

type listener struct {
	id      int
	capture bool
	fn      func(*Event)
}

// Document is the host-wide event target. Controllers register move/up/cancel
// listeners here so a drag keeps tracking outside its handle. It also owns
// the body-level class list and the single interaction mode.
type Document struct {
	listeners map[EventKind][]listener
	nextID    int
	classes   classSet
	mode      InteractionMode
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	d := &Document{listeners: map[EventKind][]listener{}}
	d.mode.doc = d
	return d
}

// On registers a bubbling listener and returns its remover.
func (d *Document) On(kind EventKind, fn func(*Event)) (off func()) {
	return d.add(kind, fn, false)
}

// OnCapture registers a listener that runs before every bubbling listener.
func (d *Document) OnCapture(kind EventKind, fn func(*Event)) (off func()) {
	return d.add(kind, fn, true)
}

func (d *Document) add(kind EventKind, fn func(*Event), capture bool) func() {
	d.nextID++
	id := d.nextID
	d.listeners[kind] = append(d.listeners[kind], listener{id: id, capture: capture, fn: fn})
	return func() { d.remove(kind, id) }
}

func (d *Document) remove(kind EventKind, id int) {
	ls := d.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			d.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(d.listeners[kind]) == 0 {
		delete(d.listeners, kind)
	}
}

// Dispatch delivers ev to capture listeners, then bubbling listeners, until
// one stops propagation. Listeners added or removed during dispatch take
// effect on the next event.
func (d *Document) Dispatch(ev *Event) {
	snapshot := append([]listener(nil), d.listeners[ev.Kind]...)
	for _, phase := range []bool{true, false} {
		for _, l := range snapshot {
			if l.capture != phase {
				continue
			}
			l.fn(ev)
			if ev.stopped {
				return
			}
		}
	}
}

// ListenerCount reports how many listeners are registered for kind.
func (d *Document) ListenerCount(kind EventKind) int {
	return len(d.listeners[kind])
}

// HasClass reports whether the body carries class.
func (d *Document) HasClass(class string) bool {
	return d.classes.has(class)
}

// Mode returns the document's interaction mode.
func (d *Document) Mode() *InteractionMode {
	return &d.mode
}

// InteractionMode is the document-wide "a resize is in progress" flag. At
// most one controller holds it; while held the body carries ActiveClass.
type InteractionMode struct {
	doc   *Document
	owner *Controller
}

// Acquire gives the mode to c. It fails when another controller holds it.
func (m *InteractionMode) Acquire(c *Controller) bool {
	if m.owner != nil && m.owner != c {
		return false
	}
	m.owner = c
	m.doc.classes.add(ActiveClass)
	return true
}

// Release drops the mode if c holds it.
func (m *InteractionMode) Release(c *Controller) {
	if m.owner != c {
		return
	}
	m.owner = nil
	m.doc.classes.remove(ActiveClass)
}

// Active reports whether any controller is dragging.
func (m *InteractionMode) Active() bool {
	return m.owner != nil
}

// Holder returns the handle whose controller holds the mode, or nil.
func (m *InteractionMode) Holder() *Handle {
	if m.owner == nil {
		return nil
	}
	return m.owner.handle
}

type classSet map[string]struct{}

func (c *classSet) add(name string) {
	if *c == nil {
		*c = classSet{}
	}
	(*c)[name] = struct{}{}
}

func (c classSet) remove(name string) { delete(c, name) }

func (c classSet) has(name string) bool {
	_, ok := c[name]
	return ok
}

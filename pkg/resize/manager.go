package resize

import (
	"github.com/go-logr/logr"
)

// Manager attaches and detaches column resizing on surfaces. It keeps no
// per-table state of its own: everything an attachment owns hangs off the
// handles placed on the surface, so Detach works from the surface alone.
type Manager struct {
	doc *Document
	cfg Config
	log logr.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithConfig replaces the default configuration. Zero fields take defaults.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg.withDefaults() }
}

// WithLogger sets the logger used for lifecycle and drag events.
func WithLogger(log logr.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager returns a manager whose controllers track input on doc.
func NewManager(doc *Document, opts ...Option) *Manager {
	if doc == nil {
		doc = NewDocument()
	}
	m := &Manager{doc: doc, cfg: DefaultConfig(), log: logr.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Document returns the document the manager's controllers listen on.
func (m *Manager) Document() *Document { return m.doc }

// Config returns the manager's base configuration.
func (m *Manager) Config() Config { return m.cfg }

// Attach maps, measures, scales and locks the table, then wires one handle
// per header entry. Any earlier attachment is detached first. Tables without
// header cells are left alone.
func (m *Manager) Attach(s Surface) {
	m.Detach(s)

	cm := MapColumns(s)
	if cm.Empty() {
		m.log.V(1).Info("no header cells, resizing unavailable")
		return
	}
	SyncColumnGroup(s, cm.ColumnCount)

	cfg := m.cfg
	cfg.Mode = ModeFromAttr(s.Attr(ModeAttr), cfg.Mode)

	natural := NaturalWidths(cm.Entries, s, cm.ColumnCount, cfg.MinWidth, cfg.CellPadding)
	widths := Scale(natural, roundedWidth(s), cfg.MinWidth)
	Lock(s, cm, widths)

	positioner, _ := s.(Positioner)
	wired := 0
	for i, e := range cm.Entries {
		if e.Header.Initialized() {
			continue
		}
		if positioner != nil {
			if err := positioner.EnsurePositioned(e.Header); err != nil {
				m.log.V(2).Info("header positioning failed", "header", e.Header.Label(), "error", err.Error())
			}
		}
		h := &Handle{entry: e, index: i, columns: cm.ColumnCount}
		h.ctrl = &Controller{
			handle:  h,
			surface: s,
			doc:     m.doc,
			cm:      cm,
			cfg:     cfg,
			log:     m.log,
		}
		h.wire()
		e.Header.SetInitialized(true)
		s.AddHandle(h)
		wired++
	}
	m.log.V(1).Info("column resizing attached", "columns", cm.ColumnCount,
		"handles", wired, "mode", string(cfg.Mode), "widths", widths)
}

// Detach removes every handle from the table, ending any drag in flight.
// It is safe on tables that were never attached.
func (m *Manager) Detach(s Surface) {
	handles := s.Handles()
	for _, h := range handles {
		if h.ctrl != nil {
			h.ctrl.cancel()
		}
		h.unwire()
		h.entry.Header.SetInitialized(false)
		s.RemoveHandle(h)
	}
	if len(handles) > 0 {
		m.log.V(1).Info("column resizing detached", "handles", len(handles))
	}
}

// Attached reports whether the table currently carries handles.
func (m *Manager) Attached(s Surface) bool {
	return len(s.Handles()) > 0
}

// Active returns the controller with a press or drag in progress on the table, if any.
func (m *Manager) Active(s Surface) *Controller {
	for _, h := range s.Handles() {
		if h.ctrl != nil && h.ctrl.State() != Idle {
			return h.ctrl
		}
	}
	return nil
}

// Session returns the drag session of the active controller on the table.
func (m *Manager) Session(s Surface) (Session, bool) {
	if c := m.Active(s); c != nil {
		return c.Session()
	}
	return Session{}, false
}

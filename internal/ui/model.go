// Package ui hosts a resizable table in a bubbletea program. Terminal mouse
// and key messages are translated into resize events; the resize engine
// does the rest.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/colresize/internal/config"
	"github.com/oakwood-commons/colresize/internal/termtable"
	"github.com/oakwood-commons/colresize/pkg/loader"
	"github.com/oakwood-commons/colresize/pkg/resize"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// tableTop is the screen line of the first table line; the title sits above it.
	tableTop = 1
)

// Notifier receives transient status messages, such as mode changes and
// refused resizes.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Options configure a Model.
type Options struct {
	AppName  string
	Document loader.Table
	Resize   resize.Config
	Theme    config.ThemeConfig
	NoColor  bool
	ShowHelp bool
	Width    int
	Height   int
	Logger   logr.Logger
	// Notifier, when set, is told about every status message too.
	Notifier Notifier
}

// Model is the bubbletea model of the table view.
type Model struct {
	opts    Options
	table   *termtable.Table
	mgr     *resize.Manager
	palette Palette
	keys    KeyMap
	help    help.Model
	log     logr.Logger

	width, height int
	focus         int
	cursor        int
	offset        int
	status        string

	// pressHandle is the handle under the last mouse press, if any.
	pressHandle *resize.Handle
	pressed     bool
	quitting    bool
}

// New builds the model and lays the table out for the initial size.
func New(opts Options) *Model {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	m := &Model{
		opts:    opts,
		palette: NewPalette(opts.Theme, opts.NoColor),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		log:     log,
		focus:   -1,
	}
	if opts.NoColor {
		m.help.Styles = help.Styles{}
	}
	m.mgr = resize.NewManager(resize.NewDocument(), resize.WithConfig(opts.Resize), resize.WithLogger(log))
	m.table = termtable.FromDocument(opts.Document, 0)
	m.setSize(opts.Width, opts.Height)
	return m
}

// Table returns the hosted table.
func (m *Model) Table() *termtable.Table { return m.table }

// Manager returns the resize manager wired to the table.
func (m *Model) Manager() *resize.Manager { return m.mgr }

// Cursor is the selected body row.
func (m *Model) Cursor() int { return m.cursor }

// Focused returns the handle with keyboard focus, or nil.
func (m *Model) Focused() *resize.Handle {
	handles := m.table.Handles()
	if m.focus < 0 || m.focus >= len(handles) {
		return nil
	}
	return handles[m.focus]
}

// Status is the current status message.
func (m *Model) Status() string { return m.status }

// Notify implements Notifier.
func (m *Model) Notify(msg string) {
	m.status = msg
	if m.opts.Notifier != nil {
		m.opts.Notifier.Notify(msg)
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case tea.MouseClickMsg:
		m.mousePress(msg.Mouse())
	case tea.MouseMotionMsg:
		m.mouseMove(msg.Mouse())
	case tea.MouseReleaseMsg:
		m.mouseRelease(msg.Mouse())
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.moveCursor(-1)
		case tea.MouseWheelDown:
			m.moveCursor(1)
		}
	}
	return m, nil
}

// setSize re-fits the table to a new terminal size. While a column is being
// dragged the layout is kept; press r afterwards to fit the new width.
func (m *Model) setSize(w, h int) {
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	m.height = h
	if m.width == w && m.mgr.Attached(m.table) {
		m.clampCursor()
		return
	}
	if m.mgr.Active(m.table) != nil {
		m.width = w
		m.clampCursor()
		return
	}
	m.width = w
	m.refit()
}

// refit drops explicit widths and attaches again at the current width.
func (m *Model) refit() {
	m.mgr.Detach(m.table)
	m.table.Reset()
	m.table.SetAvailableWidth(m.width)
	m.mgr.Attach(m.table)
	m.clampFocus()
	m.clampCursor()
	m.log.V(1).Info("table fitted", "width", m.width, "height", m.height)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.mgr.Detach(m.table)
		return tea.Quit
	case key.Matches(msg, m.keys.FocusNext):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.FocusPrev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Blur):
		m.focus = -1
	case key.Matches(msg, m.keys.NarrowMore):
		m.resizeFocused(resize.KeyArrowLeft, true)
	case key.Matches(msg, m.keys.WidenMore):
		m.resizeFocused(resize.KeyArrowRight, true)
	case key.Matches(msg, m.keys.Narrow):
		m.resizeFocused(resize.KeyArrowLeft, false)
	case key.Matches(msg, m.keys.Widen):
		m.resizeFocused(resize.KeyArrowRight, false)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.ToggleMode):
		m.toggleMode()
	case key.Matches(msg, m.keys.Relock):
		if m.mgr.Active(m.table) != nil {
			m.Notify("finish the current resize first")
			return nil
		}
		m.refit()
		m.Notify("columns fitted to the window")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) moveFocus(step int) {
	n := len(m.table.Handles())
	if n == 0 {
		m.focus = -1
		return
	}
	switch {
	case m.focus < 0 && step > 0:
		m.focus = 0
	case m.focus < 0:
		m.focus = n - 1
	default:
		m.focus = (m.focus + step + n) % n
	}
}

func (m *Model) resizeFocused(dir string, large bool) {
	h := m.Focused()
	if h == nil {
		m.Notify("press tab to focus a column boundary")
		return
	}
	if m.mgr.Document().Mode().Active() {
		m.Notify("a column is already being resized")
		return
	}
	h.Dispatch(&resize.Event{Kind: resize.KeyDown, Key: dir, Shift: large})
}

// toggleMode flips the table's resize mode attribute and attaches again so
// the handles pick it up.
func (m *Model) toggleMode() {
	if m.mgr.Active(m.table) != nil {
		m.Notify("finish the current resize first")
		return
	}
	next := resize.ModeDistribute
	if m.mode() == resize.ModeDistribute {
		next = resize.ModeShift
	}
	m.table.SetAttr(resize.ModeAttr, string(next))
	m.mgr.Detach(m.table)
	m.mgr.Attach(m.table)
	m.clampFocus()
	m.log.V(1).Info("resize mode toggled", "mode", string(next))
	m.Notify(fmt.Sprintf("resize mode: %s", next))
}

func (m *Model) mode() resize.Mode {
	return resize.ModeFromAttr(m.table.Attr(resize.ModeAttr), m.mgr.Config().Mode)
}

func (m *Model) mousePress(mouse tea.Mouse) {
	m.status = ""
	m.pressed = true
	m.pressHandle = nil
	if mouse.Button != tea.MouseLeft {
		return
	}
	h := m.table.HandleAt(mouse.X, mouse.Y-tableTop)
	if h == nil {
		return
	}
	m.pressHandle = h
	for i, x := range m.table.Handles() {
		if x == h {
			m.focus = i
		}
	}
	h.Dispatch(&resize.Event{
		Kind:  resize.MouseDown,
		X:     float64(mouse.X),
		Shift: mouse.Mod&tea.ModShift != 0,
		Alt:   mouse.Mod&tea.ModAlt != 0,
		Ctrl:  mouse.Mod&tea.ModCtrl != 0,
	})
}

func (m *Model) mouseMove(mouse tea.Mouse) {
	if !m.pressed {
		return
	}
	m.mgr.Document().Dispatch(&resize.Event{Kind: resize.MouseMove, X: float64(mouse.X)})
}

// mouseRelease delivers the click before the mouse up, so a click that ends
// a drag is swallowed by the drag.
func (m *Model) mouseRelease(mouse tea.Mouse) {
	if !m.pressed {
		return
	}
	m.pressed = false
	doc := m.mgr.Document()

	click := &resize.Event{Kind: resize.Click, X: float64(mouse.X)}
	if m.pressHandle != nil {
		m.pressHandle.Dispatch(click)
	}
	if !click.Stopped() {
		doc.Dispatch(click)
	}
	doc.Dispatch(&resize.Event{Kind: resize.MouseUp, X: float64(mouse.X)})
	m.pressHandle = nil

	if click.DefaultPrevented() {
		return
	}
	if row := m.bodyRowAt(mouse.Y - tableTop); row >= 0 {
		m.cursor = row
	}
}

func (m *Model) bodyRowAt(y int) int {
	r := y - m.table.HeaderLines() - 1
	if r < 0 || r >= m.visibleRows() {
		return -1
	}
	r += m.offset
	if r >= m.table.BodyRowCount() {
		return -1
	}
	return r
}

func (m *Model) moveCursor(step int) {
	m.cursor += step
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.table.BodyRowCount()
	m.cursor = max(0, min(m.cursor, n-1))
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.offset = max(0, min(m.offset, n-visible))
}

func (m *Model) clampFocus() {
	if m.focus >= len(m.table.Handles()) {
		m.focus = len(m.table.Handles()) - 1
	}
}

func (m *Model) footerLines() int {
	if m.opts.ShowHelp {
		return 2
	}
	return 1
}

// visibleRows is how many body rows fit under the title, header and rule.
func (m *Model) visibleRows() int {
	return max(1, m.height-tableTop-m.table.HeaderLines()-1-m.footerLines())
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

// Render draws one frame: title, table, status line and help.
func (m *Model) Render() string {
	if m.quitting {
		return ""
	}
	lines := []string{m.titleLine()}

	frame := m.table.Render(termtable.RenderOptions{
		Width:    m.width,
		Selected: m.cursor,
		Focused:  m.Focused(),
		Styles:   m.palette.Table,
	})
	if frame == "" {
		lines = append(lines, "(no columns)")
	} else {
		tableLines := strings.Split(frame, "\n")
		head := min(m.table.HeaderLines()+1, len(tableLines))
		lines = append(lines, tableLines[:head]...)
		// Render marks the selected row by its absolute index.
		body := tableLines[head:]
		end := min(m.offset+m.visibleRows(), len(body))
		if m.offset < end {
			lines = append(lines, body[m.offset:end]...)
		}
	}

	for len(lines) < m.height-m.footerLines() {
		lines = append(lines, "")
	}
	lines = append(lines, m.statusLine())
	if m.opts.ShowHelp {
		lines = append(lines, ansi.Truncate(m.help.View(m.keys), m.width, ""))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) titleLine() string {
	name := m.opts.AppName
	if name == "" {
		name = "colresize"
	}
	title := fmt.Sprintf("%s  mode: %s  columns: %d  rows: %d",
		name, m.mode(), m.table.Columns(), m.table.BodyRowCount())
	return m.palette.Title.Render(ansi.Truncate(title, m.width, "…"))
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.palette.Notice.Render(ansi.Truncate(m.status, m.width, "…"))
	}
	var text string
	if c := m.mgr.Active(m.table); c != nil && c.State() == resize.Dragging {
		h := m.mgr.Document().Mode().Holder()
		text = fmt.Sprintf("resizing %q: %d cells", h.Header().Header.Label(), h.ValueNow())
	} else if h := m.Focused(); h != nil {
		text = fmt.Sprintf("%s (%s, %s): %d cells", h.Label(), h.Role(), h.Orientation(), h.ValueNow())
	} else if row := m.table.RowText(m.cursor); row != nil {
		text = fmt.Sprintf("row %d/%d", m.cursor+1, m.table.BodyRowCount())
	}
	return m.palette.Status.Render(ansi.Truncate(text, m.width, "…"))
}

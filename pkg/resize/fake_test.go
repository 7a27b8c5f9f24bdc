package resize

import (
	"errors"
	"math"
)

// fakeCell is a synthetic measurement. Rendered width is derived from the
// fake table's column widths once the table is locked.
type fakeCell struct {
	t           *fakeTable
	col, span   int
	width       int
	scroll      int
	minWidth    int
	label       string
	initialized bool
}

func (c *fakeCell) Span() int { return c.span }

func (c *fakeCell) RenderedWidth() int {
	if c.t != nil && c.t.fixed {
		total := 0
		for i := c.col; i < c.col+max(c.span, 1) && i < len(c.t.cols); i++ {
			total += c.t.cols[i]
		}
		return total
	}
	return c.width
}

func (c *fakeCell) ScrollWidth() int       { return c.scroll }
func (c *fakeCell) SetMinWidth(px int)     { c.minWidth = px }
func (c *fakeCell) Label() string          { return c.label }
func (c *fakeCell) Initialized() bool      { return c.initialized }
func (c *fakeCell) SetInitialized(v bool)  { c.initialized = v }

type fakeTable struct {
	head     [][]HeaderCell
	first    []HeaderCell
	body     [][]Cell
	cols     []int
	width    float64
	setWidth int
	fixed    bool
	attrs    map[string]string
	handles  []*Handle

	captureErr error
	captured   map[*Handle]int
	releases   int
}

func newFakeTable(width float64) *fakeTable {
	return &fakeTable{width: width, attrs: map[string]string{}, captured: map[*Handle]int{}}
}

// withHeader adds one header row of cells with the given rendered widths and spans.
func (t *fakeTable) withHeader(widths []int, spans []int) *fakeTable {
	row := make([]HeaderCell, len(widths))
	col := 0
	for i, w := range widths {
		span := 1
		if spans != nil {
			span = spans[i]
		}
		row[i] = &fakeCell{t: t, col: col, span: span, width: w, label: string(rune('A' + i))}
		col += span
	}
	t.head = append(t.head, row)
	return t
}

func (t *fakeTable) withBodyRow(scroll ...int) *fakeTable {
	row := make([]Cell, len(scroll))
	for i, s := range scroll {
		row[i] = &fakeCell{t: t, col: i, span: 1, width: s, scroll: s}
	}
	t.body = append(t.body, row)
	return t
}

func (t *fakeTable) headerCell(i int) *fakeCell {
	return t.head[len(t.head)-1][i].(*fakeCell)
}

func (t *fakeTable) HeadRows() [][]HeaderCell { return t.head }
func (t *fakeTable) FirstRow() []HeaderCell   { return t.first }
func (t *fakeTable) BodyRows() [][]Cell       { return t.body }
func (t *fakeTable) Columns() int             { return len(t.cols) }
func (t *fakeTable) AppendColumn()            { t.cols = append(t.cols, 0) }
func (t *fakeTable) RemoveLastColumn()        { t.cols = t.cols[:len(t.cols)-1] }
func (t *fakeTable) ColumnWidth(i int) int    { return t.cols[i] }
func (t *fakeTable) SetColumnWidth(i, px int) { t.cols[i] = px }

func (t *fakeTable) RenderedWidth() float64 {
	if t.fixed && t.setWidth > 0 {
		return float64(t.setWidth)
	}
	return t.width
}

func (t *fakeTable) SetWidth(px int)  { t.setWidth = px }
func (t *fakeTable) SetFixedLayout()  { t.fixed = true }
func (t *fakeTable) Attr(name string) string { return t.attrs[name] }
func (t *fakeTable) AddHandle(h *Handle)     { t.handles = append(t.handles, h) }

func (t *fakeTable) RemoveHandle(h *Handle) {
	for i, x := range t.handles {
		if x == h {
			t.handles = append(t.handles[:i:i], t.handles[i+1:]...)
			return
		}
	}
}

func (t *fakeTable) Handles() []*Handle { return append([]*Handle(nil), t.handles...) }

func (t *fakeTable) CapturePointer(h *Handle, id int) error {
	if t.captureErr != nil {
		return t.captureErr
	}
	t.captured[h] = id
	return nil
}

func (t *fakeTable) ReleasePointer(h *Handle, id int) error {
	t.releases++
	if got, ok := t.captured[h]; !ok || got != id {
		return errors.New("not captured")
	}
	delete(t.captured, h)
	return nil
}

func (t *fakeTable) HasPointerCapture(h *Handle, id int) bool {
	got, ok := t.captured[h]
	return ok && got == id
}

// lockedTo sets explicit column widths as if a previous lock had run.
func (t *fakeTable) lockedTo(widths ...int) *fakeTable {
	t.cols = append([]int(nil), widths...)
	t.fixed = true
	t.setWidth = Sum(widths)
	t.width = float64(t.setWidth)
	return t
}

func (t *fakeTable) tableWidth() int { return int(math.Round(t.RenderedWidth())) }

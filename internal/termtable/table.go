// Package termtable is a terminal table that implements resize.Surface.
// Widths are measured in terminal cells; each column's width includes the
// one-cell border drawn on its right edge.
package termtable

import (
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/colresize/pkg/loader"
	"github.com/oakwood-commons/colresize/pkg/resize"
)

// HeaderSpec declares one header cell.
type HeaderSpec struct {
	Text string
	Span int
}

// Cell is one header or body cell.
type Cell struct {
	Text        string
	span        int
	col         int
	minWidth    int
	initialized bool
	t           *Table
}

// Span implements resize.Cell.
func (c *Cell) Span() int { return c.span }

// Column is the first column the cell covers.
func (c *Cell) Column() int { return c.col }

// RenderedWidth is the sum of the widths of the columns the cell covers.
func (c *Cell) RenderedWidth() int {
	n := c.t.layoutColumns()
	total := 0
	for i := c.col; i < c.col+c.span && i < n; i++ {
		total += c.t.ColumnWidth(i)
	}
	return total
}

// ScrollWidth is the content width plus the border cell.
func (c *Cell) ScrollWidth() int { return runewidth.StringWidth(c.Text) + 1 }

func (c *Cell) SetMinWidth(px int)    { c.minWidth = px }
func (c *Cell) MinWidth() int         { return c.minWidth }
func (c *Cell) Label() string         { return c.Text }
func (c *Cell) Initialized() bool     { return c.initialized }
func (c *Cell) SetInitialized(v bool) { c.initialized = v }

// Table holds a header section, a body and a column group.
type Table struct {
	head      [][]*Cell
	body      [][]*Cell
	cols      []int
	width     int
	fixed     bool
	available int
	attrs     map[string]string
	handles   []*resize.Handle
}

// New returns an empty table that fills available cells when laid out automatically.
func New(available int) *Table {
	return &Table{available: available, attrs: map[string]string{}}
}

// AddHeaderRow appends a row to the header section.
func (t *Table) AddHeaderRow(specs ...HeaderSpec) {
	row := make([]*Cell, 0, len(specs))
	col := 0
	for _, s := range specs {
		span := max(s.Span, 1)
		row = append(row, &Cell{Text: s.Text, span: span, col: col, t: t})
		col += span
	}
	t.head = append(t.head, row)
}

// AddRow appends a body row.
func (t *Table) AddRow(values ...string) {
	row := make([]*Cell, len(values))
	for i, v := range values {
		row[i] = &Cell{Text: v, span: 1, col: i, t: t}
	}
	t.body = append(t.body, row)
}

// SetAttr sets a table-level data attribute.
func (t *Table) SetAttr(name, value string) { t.attrs[name] = value }

// SetAvailableWidth changes the container width used by automatic layout.
func (t *Table) SetAvailableWidth(w int) { t.available = w }

// Fixed reports whether the table uses a fixed layout.
func (t *Table) Fixed() bool { return t.fixed }

// Reset drops inline widths and returns the table to automatic layout.
func (t *Table) Reset() {
	for i := range t.cols {
		t.cols[i] = 0
	}
	t.width = 0
	t.fixed = false
	for _, row := range t.head {
		for _, c := range row {
			c.minWidth = 0
		}
	}
	for _, row := range t.body {
		for _, c := range row {
			c.minWidth = 0
		}
	}
}

// HeaderLines is the number of rendered lines taken by header rows.
func (t *Table) HeaderLines() int {
	if len(t.head) > 0 {
		return len(t.head)
	}
	if len(t.body) > 0 {
		return 1
	}
	return 0
}

// BodyRowCount is the number of body rows rendered below the header.
func (t *Table) BodyRowCount() int {
	if len(t.head) == 0 && len(t.body) > 0 {
		return len(t.body) - 1
	}
	return len(t.body)
}

// HeadRows implements resize.Surface.
func (t *Table) HeadRows() [][]resize.HeaderCell {
	out := make([][]resize.HeaderCell, len(t.head))
	for i, row := range t.head {
		out[i] = headerCells(row)
	}
	return out
}

// FirstRow implements resize.Surface.
func (t *Table) FirstRow() []resize.HeaderCell {
	switch {
	case len(t.head) > 0:
		return headerCells(t.head[0])
	case len(t.body) > 0:
		return headerCells(t.body[0])
	default:
		return nil
	}
}

// BodyRows implements resize.RowSource.
func (t *Table) BodyRows() [][]resize.Cell {
	out := make([][]resize.Cell, len(t.body))
	for i, row := range t.body {
		cells := make([]resize.Cell, len(row))
		for j, c := range row {
			cells[j] = c
		}
		out[i] = cells
	}
	return out
}

func headerCells(row []*Cell) []resize.HeaderCell {
	out := make([]resize.HeaderCell, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

func (t *Table) Columns() int      { return len(t.cols) }
func (t *Table) AppendColumn()     { t.cols = append(t.cols, 0) }
func (t *Table) RemoveLastColumn() { t.cols = t.cols[:len(t.cols)-1] }

// ColumnWidth is the explicit width of column i when one is set, else its
// automatic width.
func (t *Table) ColumnWidth(i int) int {
	if i < len(t.cols) && t.cols[i] > 0 {
		return t.cols[i]
	}
	auto := t.autoWidths()
	if i < len(auto) {
		return auto[i]
	}
	return 0
}

func (t *Table) SetColumnWidth(i, px int) {
	if i >= 0 && i < len(t.cols) {
		t.cols[i] = px
	}
}

// RenderedWidth is the explicit table width under fixed layout, else the
// sum of the column widths.
func (t *Table) RenderedWidth() float64 {
	if t.fixed && t.width > 0 {
		return float64(t.width)
	}
	total := 0
	for i := range t.layoutColumns() {
		total += t.ColumnWidth(i)
	}
	return float64(total)
}

func (t *Table) SetWidth(px int)  { t.width = px }
func (t *Table) SetFixedLayout()  { t.fixed = true }
func (t *Table) Attr(name string) string { return t.attrs[name] }

func (t *Table) AddHandle(h *resize.Handle) { t.handles = append(t.handles, h) }

func (t *Table) RemoveHandle(h *resize.Handle) {
	for i, x := range t.handles {
		if x == h {
			t.handles = append(t.handles[:i:i], t.handles[i+1:]...)
			return
		}
	}
}

func (t *Table) Handles() []*resize.Handle {
	return append([]*resize.Handle(nil), t.handles...)
}

// layoutColumns is the number of columns the table renders.
func (t *Table) layoutColumns() int {
	n := len(t.cols)
	for _, row := range t.head {
		sum := 0
		for _, c := range row {
			sum += c.span
		}
		n = max(n, sum)
	}
	for _, row := range t.body {
		n = max(n, len(row))
	}
	return n
}

// autoWidths sizes columns from content and stretches them to fill the
// available width.
func (t *Table) autoWidths() []int {
	n := t.layoutColumns()
	if n == 0 {
		return nil
	}
	natural := make([]int, n)
	for i := range natural {
		natural[i] = 2
	}
	for _, row := range t.head {
		for _, c := range row {
			share := c.ScrollWidth() / c.span
			for i := c.col; i < c.col+c.span && i < n; i++ {
				natural[i] = max(natural[i], share)
			}
		}
	}
	for _, row := range t.body {
		for i, c := range row {
			natural[i] = max(natural[i], c.ScrollWidth())
		}
	}
	if t.available > resize.Sum(natural) {
		return resize.Scale(natural, t.available, 2)
	}
	return natural
}

// FromDocument builds a table from a loaded document. The document's resize
// mode, when set, becomes the table's mode attribute.
func FromDocument(doc loader.Table, available int) *Table {
	t := New(available)
	for _, row := range doc.Headers {
		specs := make([]HeaderSpec, len(row))
		for i, h := range row {
			specs[i] = HeaderSpec{Text: h.Text, Span: h.Span}
		}
		t.AddHeaderRow(specs...)
	}
	for _, row := range doc.Rows {
		t.AddRow(row...)
	}
	if doc.Mode != "" {
		t.SetAttr(resize.ModeAttr, doc.Mode)
	}
	return t
}

// RowText returns the cell texts of body row i, or nil.
func (t *Table) RowText(i int) []string {
	body := t.body
	if len(t.head) == 0 && len(body) > 0 {
		body = body[1:]
	}
	if i < 0 || i >= len(body) {
		return nil
	}
	out := make([]string, len(body[i]))
	for j, c := range body[i] {
		out[j] = c.Text
	}
	return out
}

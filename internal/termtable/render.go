package termtable

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/colresize/pkg/resize"
)

const (
	borderRune      = "│"
	activeRune      = "┃"
	ruleRune        = "─"
	ruleCrossRune   = "┼"
	ellipsis        = "…"
	noSelectionMark = -1
)

// Styles controls how the table is drawn.
type Styles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Focused  lipgloss.Style
	Dragging lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Cell:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Reverse(true),
		Border:   lipgloss.NewStyle().Faint(true),
		Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Bold(true),
		Dragging: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")).Bold(true),
	}
}

// PlainStyles returns styles that emit no escape sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Header: plain, Cell: plain, Selected: plain, Border: plain, Focused: plain, Dragging: plain}
}

// RenderOptions are per-frame rendering inputs.
type RenderOptions struct {
	// Width truncates every line to the viewport; 0 disables truncation.
	Width    int
	Selected int
	Focused  *resize.Handle
	Styles   Styles
}

// Render draws the header rows, a rule and the body rows.
func (t *Table) Render(opts RenderOptions) string {
	n := t.layoutColumns()
	if n == 0 {
		return ""
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = t.ColumnWidth(i)
	}

	headRows, bodyRows := t.head, t.body
	if len(headRows) == 0 && len(bodyRows) > 0 {
		headRows, bodyRows = bodyRows[:1], bodyRows[1:]
	}

	marks := t.boundaryMarks(opts)
	lines := make([]string, 0, len(headRows)+len(bodyRows)+1)
	for r, row := range headRows {
		var boundary map[int]string
		if r == len(headRows)-1 {
			boundary = marks
		}
		lines = append(lines, renderRow(row, widths, opts.Styles.Header, opts.Styles, boundary))
	}
	lines = append(lines, renderRule(widths, opts.Styles.Border))
	for r, row := range bodyRows {
		style := opts.Styles.Cell
		if r == opts.Selected {
			style = opts.Styles.Selected
		}
		lines = append(lines, renderRow(row, widths, style, opts.Styles, nil))
	}

	if opts.Width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, opts.Width, "")
		}
	}
	return strings.Join(lines, "\n")
}

// boundaryMarks maps a left column index to the styled border drawn for the
// focused or dragging handle on that boundary.
func (t *Table) boundaryMarks(opts RenderOptions) map[int]string {
	marks := map[int]string{}
	for _, h := range t.handles {
		switch {
		case h.HasClass(resize.DraggingClass):
			marks[h.LeftColumn()] = opts.Styles.Dragging.Render(activeRune)
		case h == opts.Focused:
			marks[h.LeftColumn()] = opts.Styles.Focused.Render(activeRune)
		}
	}
	return marks
}

func renderRow(row []*Cell, widths []int, style lipgloss.Style, styles Styles, marks map[int]string) string {
	var b strings.Builder
	col := 0
	for _, c := range row {
		if col >= len(widths) {
			break
		}
		end := min(col+c.span, len(widths))
		w := 0
		for i := col; i < end; i++ {
			w += widths[i]
		}
		b.WriteString(style.Render(fit(c.Text, w-1)))
		if mark, ok := marks[end-1]; ok {
			b.WriteString(mark)
		} else {
			b.WriteString(styles.Border.Render(borderRune))
		}
		col = end
	}
	for ; col < len(widths); col++ {
		b.WriteString(style.Render(fit("", widths[col]-1)))
		b.WriteString(styles.Border.Render(borderRune))
	}
	return b.String()
}

func renderRule(widths []int, border lipgloss.Style) string {
	var b strings.Builder
	for _, w := range widths {
		b.WriteString(strings.Repeat(ruleRune, max(w-1, 0)))
		b.WriteString(ruleCrossRune)
	}
	return border.Render(b.String())
}

// fit pads or truncates s to exactly w cells, keeping one leading space.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = " " + s
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, ellipsis)
	}
	return runewidth.FillRight(s, w)
}

// BoundaryX is the screen column of the border cell for h.
func (t *Table) BoundaryX(h *resize.Handle) int {
	x := 0
	for i := 0; i <= h.LeftColumn(); i++ {
		x += t.ColumnWidth(i)
	}
	return x - 1
}

// HandleAt returns the handle under screen position (x, y), relative to the
// table's top-left corner. Handles are hit on any header line.
func (t *Table) HandleAt(x, y int) *resize.Handle {
	if y < 0 || y >= t.HeaderLines() {
		return nil
	}
	for _, h := range t.handles {
		if t.BoundaryX(h) == x {
			return h
		}
	}
	return nil
}

// BodyRowAt maps a screen line to a body row index, or -1.
func (t *Table) BodyRowAt(y int) int {
	row := y - t.HeaderLines() - 1
	if row < 0 || row >= t.BodyRowCount() {
		return noSelectionMark
	}
	return row
}

package resize

import "math"

// Lock commits widths onto the table: width on every column-group element,
// min-width on each header cell (the sum over its column range) and on each
// body cell (by direct column index). The table width is then pinned to its
// rounded rendered width and switched to a fixed layout.
func Lock(s Surface, cm ColumnMap, widths []int) {
	for i, w := range widths {
		if i >= s.Columns() {
			break
		}
		s.SetColumnWidth(i, w)
	}
	for _, e := range cm.Entries {
		e.Header.SetMinWidth(rangeWidth(widths, e.StartColumn, e.EndColumn))
	}
	for _, row := range s.BodyRows() {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			cell.SetMinWidth(widths[i])
		}
	}
	s.SetWidth(roundedWidth(s))
	s.SetFixedLayout()
}

// Freeze re-reads the current rendered column widths, fits them to the
// table's rounded rendered width and locks them. It gives a drag a stable
// explicit baseline without re-measuring content.
func Freeze(s Surface, cm ColumnMap, minWidth int) []int {
	current := make([]int, s.Columns())
	for i := range current {
		current[i] = s.ColumnWidth(i)
	}
	widths := Scale(current, roundedWidth(s), minWidth)
	Lock(s, cm, widths)
	return widths
}

// setColumn updates one column and keeps the cell min-widths that Lock
// wrote consistent with it.
func setColumn(s Surface, cm ColumnMap, col, px int) {
	s.SetColumnWidth(col, px)
	for _, row := range s.BodyRows() {
		if col < len(row) {
			row[col].SetMinWidth(px)
		}
	}
	for _, e := range cm.Entries {
		if !e.Covers(col) {
			continue
		}
		total := 0
		for i := e.StartColumn; i <= e.EndColumn && i < s.Columns(); i++ {
			total += s.ColumnWidth(i)
		}
		e.Header.SetMinWidth(total)
	}
}

func rangeWidth(widths []int, start, end int) int {
	total := 0
	for i := start; i <= end && i < len(widths); i++ {
		total += widths[i]
	}
	return total
}

func roundedWidth(s Surface) int {
	return int(math.Round(s.RenderedWidth()))
}

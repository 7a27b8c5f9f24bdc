package resize

// HeaderEntry maps one header cell onto the flattened column space.
type HeaderEntry struct {
	Header      HeaderCell
	StartColumn int
	EndColumn   int
	Span        int
}

// Covers reports whether column i lies under the header.
func (e HeaderEntry) Covers(i int) bool {
	return i >= e.StartColumn && i <= e.EndColumn
}

// ColumnMap is the header layout of one table.
type ColumnMap struct {
	Entries     []HeaderEntry
	ColumnCount int
}

// Empty reports whether the table has no header cells to resize.
func (m ColumnMap) Empty() bool {
	return len(m.Entries) == 0
}

// MapColumns builds the header entries for the last header row (or the first
// table row when there is no header section) and the total column count.
func MapColumns(s Surface) ColumnMap {
	heads := s.HeadRows()
	var headerRow []HeaderCell
	if len(heads) > 0 {
		headerRow = heads[len(heads)-1]
	} else {
		headerRow = s.FirstRow()
		if len(headerRow) > 0 {
			heads = [][]HeaderCell{headerRow}
		}
	}
	if len(headerRow) == 0 {
		return ColumnMap{}
	}

	entries := make([]HeaderEntry, 0, len(headerRow))
	col := 0
	for _, h := range headerRow {
		span := spanOf(h)
		entries = append(entries, HeaderEntry{
			Header:      h,
			StartColumn: col,
			EndColumn:   col + span - 1,
			Span:        span,
		})
		col += span
	}

	count := len(entries)
	for _, row := range heads {
		sum := 0
		for _, h := range row {
			sum += spanOf(h)
		}
		count = max(count, sum)
	}
	if body := s.BodyRows(); len(body) > 0 {
		count = max(count, len(body[0]))
	}

	return ColumnMap{Entries: entries, ColumnCount: count}
}

// SyncColumnGroup grows or shrinks the column group from the end until it
// holds exactly n columns. Existing columns are left untouched.
func SyncColumnGroup(s Surface, n int) {
	for s.Columns() < n {
		s.AppendColumn()
	}
	for s.Columns() > n {
		s.RemoveLastColumn()
	}
}

func spanOf(c Cell) int {
	if span := c.Span(); span > 1 {
		return span
	}
	return 1
}

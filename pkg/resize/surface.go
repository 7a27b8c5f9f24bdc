package resize

// Cell is one rendered table cell as seen by the engine.
type Cell interface {
	// Span is the number of underlying columns the cell covers (colspan).
	Span() int
	// RenderedWidth is the width the cell currently occupies.
	RenderedWidth() int
	// ScrollWidth is the content width including overflow; 0 when unknown.
	ScrollWidth() int
	SetMinWidth(px int)
}

// HeaderCell is a cell that can host a resize handle.
type HeaderCell interface {
	Cell
	// Label is the accessible name of the column(s) under the header.
	Label() string
	// Initialized reports whether a handle has been wired onto the header.
	Initialized() bool
	SetInitialized(bool)
}

// RowSource yields the body rows used for natural-width measurement.
type RowSource interface {
	BodyRows() [][]Cell
}

// Surface is the table the engine decorates. The surface is the single
// source of truth for widths; the engine never caches them across sessions.
type Surface interface {
	RowSource

	// HeadRows returns the rows of the header section, if any.
	HeadRows() [][]HeaderCell
	// FirstRow returns the table's first row, used when there is no header section.
	FirstRow() []HeaderCell

	// Columns is the number of elements in the column group.
	Columns() int
	AppendColumn()
	RemoveLastColumn()
	// ColumnWidth is the rendered width of column i.
	ColumnWidth(i int) int
	SetColumnWidth(i, px int)

	// RenderedWidth is the table's current rendered width.
	RenderedWidth() float64
	SetWidth(px int)
	// SetFixedLayout switches the table to a fixed layout algorithm.
	SetFixedLayout()

	// Attr reads a table-level data attribute.
	Attr(name string) string

	AddHandle(h *Handle)
	RemoveHandle(h *Handle)
	// Handles returns every handle currently placed on the table.
	Handles() []*Handle
}

// PointerCapturer is implemented by surfaces that can route a pointer to a
// handle for the duration of a drag. Capture is best effort.
type PointerCapturer interface {
	CapturePointer(h *Handle, pointerID int) error
	ReleasePointer(h *Handle, pointerID int) error
	HasPointerCapture(h *Handle, pointerID int) bool
}

// Positioner is implemented by surfaces whose header cells need a
// positioning context before a handle can be placed on them.
type Positioner interface {
	EnsurePositioned(header HeaderCell) error
}

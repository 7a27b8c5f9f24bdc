package ui

import (
	"github.com/oakwood-commons/colresize/pkg/loader"
	"github.com/oakwood-commons/colresize/pkg/resize"
)

// terminalConfig matches the cell-based defaults of the embedded config.
var terminalConfig = resize.Config{
	Mode:          resize.ModeShift,
	MinWidth:      4,
	DragThreshold: 1,
	KeyStep:       1,
	KeyLargeStep:  5,
	CellPadding:   1,
}

func peopleDoc() loader.Table {
	return loader.Table{
		Headers: [][]loader.Header{{
			{Text: "name", Span: 1},
			{Text: "age", Span: 1},
			{Text: "city", Span: 1},
		}},
		Rows: [][]string{
			{"alice", "30", "Lisbon"},
			{"bob", "41", "Oslo"},
			{"carol", "27", "Nairobi"},
		},
	}
}

func testOptions() Options {
	return Options{
		AppName:  "colresize",
		Document: peopleDoc(),
		Resize:   terminalConfig,
		NoColor:  true,
		ShowHelp: true,
		Width:    80,
		Height:   24,
	}
}

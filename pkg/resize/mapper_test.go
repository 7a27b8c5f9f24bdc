package resize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumns_UsesLastHeaderRow(t *testing.T) {
	tbl := newFakeTable(400).
		withHeader([]int{200, 200}, []int{2, 2}).
		withHeader([]int{100, 100, 100, 100}, nil)

	cm := MapColumns(tbl)
	require.Len(t, cm.Entries, 4)
	assert.Equal(t, 4, cm.ColumnCount)
	for i, e := range cm.Entries {
		assert.Equal(t, i, e.StartColumn)
		assert.Equal(t, i, e.EndColumn)
		assert.Same(t, tbl.headerCell(i), e.Header)
	}
}

func TestMapColumns_SpannedHeaderRanges(t *testing.T) {
	tbl := newFakeTable(400).withHeader([]int{60, 180, 60}, []int{1, 3, 1})

	cm := MapColumns(tbl)
	require.Len(t, cm.Entries, 3)
	assert.Equal(t, 5, cm.ColumnCount)

	mid := cm.Entries[1]
	assert.Equal(t, 1, mid.StartColumn)
	assert.Equal(t, 3, mid.EndColumn)
	assert.Equal(t, 3, mid.Span)
	assert.True(t, mid.Covers(2))
	assert.False(t, mid.Covers(4))
	assert.Equal(t, 4, cm.Entries[2].StartColumn)
}

func TestMapColumns_WidestRowWins(t *testing.T) {
	tests := []struct {
		name string
		tbl  *fakeTable
		want int
	}{
		{
			name: "upper header row wider than last",
			tbl:  newFakeTable(100).withHeader([]int{10, 10, 10}, []int{2, 2, 2}).withHeader([]int{10, 10}, nil),
			want: 6,
		},
		{
			name: "body row wider than headers",
			tbl:  newFakeTable(100).withHeader([]int{10, 10}, nil).withBodyRow(1, 2, 3, 4, 5),
			want: 5,
		},
		{
			name: "header entries only",
			tbl:  newFakeTable(100).withHeader([]int{10, 10, 10}, nil),
			want: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapColumns(tt.tbl).ColumnCount)
		})
	}
}

func TestMapColumns_FirstRowFallback(t *testing.T) {
	tbl := newFakeTable(100)
	tbl.first = []HeaderCell{&fakeCell{span: 1, label: "a"}, &fakeCell{span: 0, label: "b"}}

	cm := MapColumns(tbl)
	require.Len(t, cm.Entries, 2)
	assert.Equal(t, 2, cm.ColumnCount)
	assert.Equal(t, 1, cm.Entries[1].Span, "non-positive span counts as one column")
}

func TestMapColumns_NoHeaders(t *testing.T) {
	cm := MapColumns(newFakeTable(100).withBodyRow(10, 10))
	assert.True(t, cm.Empty())
	assert.Zero(t, cm.ColumnCount)
}

func TestSyncColumnGroup(t *testing.T) {
	tbl := newFakeTable(100)
	SyncColumnGroup(tbl, 3)
	require.Equal(t, 3, tbl.Columns())

	tbl.cols[0] = 42
	SyncColumnGroup(tbl, 5)
	assert.Equal(t, []int{42, 0, 0, 0, 0}, tbl.cols)

	SyncColumnGroup(tbl, 2)
	assert.Equal(t, []int{42, 0}, tbl.cols)

	SyncColumnGroup(tbl, 2)
	assert.Equal(t, []int{42, 0}, tbl.cols)
}

package resize

import "math"

// NaturalWidths measures the content-driven width of every column: the
// largest requirement across all header entries and all body rows, never
// below minWidth. A spanned header contributes an even (floored) share of its
// rendered width to each column it covers. Body cells are indexed directly by
// column and contribute their scroll width (or rendered width when the scroll
// width is unknown) plus padding.
func NaturalWidths(entries []HeaderEntry, rows RowSource, columnCount, minWidth, padding int) []int {
	if columnCount <= 0 {
		return nil
	}
	widths := make([]int, columnCount)
	for i := range widths {
		widths[i] = minWidth
	}

	for _, e := range entries {
		share := max(minWidth, e.Header.RenderedWidth()/max(e.Span, 1))
		for i := e.StartColumn; i <= e.EndColumn && i < columnCount; i++ {
			widths[i] = max(widths[i], share)
		}
	}

	if rows == nil {
		return widths
	}
	for _, row := range rows.BodyRows() {
		for i, cell := range row {
			if i >= columnCount {
				break
			}
			need := cell.ScrollWidth()
			if need <= 0 {
				need = cell.RenderedWidth()
			}
			widths[i] = max(widths[i], need+padding)
		}
	}
	return widths
}

// Scale rescales natural widths so they sum to exactly target, each at least
// minWidth.
//
// Widths are multiplied by target/sum and floored, then clamped to minWidth.
// Pixels lost to flooring are handed out one at a time round-robin from
// column 0. When the clamp overshoots the target, pixels are reclaimed from
// the last column backward, skipping columns at the floor; the reclaim visits
// at most 2*len(natural) columns.
//
// When target < len(natural)*minWidth no exact fit exists. The floor wins:
// every column stays at minWidth and the sum exceeds target.
func Scale(natural []int, target, minWidth int) []int {
	n := len(natural)
	if n == 0 {
		return nil
	}
	sum := 0
	for _, w := range natural {
		sum += max(w, 0)
	}

	out := make([]int, n)
	total := 0
	for i, w := range natural {
		var scaled int
		if sum > 0 {
			scaled = int(math.Floor(float64(max(w, 0)) * float64(target) / float64(sum)))
		} else {
			scaled = target / n
		}
		out[i] = max(scaled, minWidth)
		total += out[i]
	}

	for i := 0; total < target; i = (i + 1) % n {
		out[i]++
		total++
	}

	for visit := 0; total > target && visit < 2*n; visit++ {
		i := n - 1 - visit%n
		for out[i] > minWidth && total > target {
			out[i]--
			total--
		}
	}
	return out
}

// Sum adds up a width slice.
func Sum(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}

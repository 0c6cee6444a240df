package simulator

import "browse99/markup"

// Contains reports whether the cell lies inside the span. A span on one row
// covers [StartCol, EndCol). A span over several rows covers the start row
// from StartCol to the edge, every row in between, and the end row up to
// EndCol.
func (l LinkSpan) Contains(row, col int) bool {
	if row == l.StartRow && row == l.EndRow {
		return col >= l.StartCol && col < l.EndCol
	}
	switch {
	case row == l.StartRow:
		return col >= l.StartCol && col < markup.Cols
	case row == l.EndRow:
		return col >= 0 && col < l.EndCol
	case row > l.StartRow && row < l.EndRow:
		return col >= 0 && col < markup.Cols
	}
	return false
}

// HitTest returns the first span, in discovery order, that covers the cell.
// Overlapping spans are allowed in hand-written markup; the earliest wins.
func HitTest(row, col int, spans []LinkSpan) *LinkSpan {
	for i := range spans {
		if spans[i].Contains(row, col) {
			return &spans[i]
		}
	}
	return nil
}

// LinkAt resolves a cell on the decoded screen.
func (s *Screen) LinkAt(row, col int) *LinkSpan {
	return HitTest(row, col, s.Links)
}

package markup

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to text cut by Truncate.
const Ellipsis = "..."

// NormalizeSpace collapses whitespace runs to single spaces and trims both ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate fits text into maxWidth cells. Whitespace is normalized first.
// Text that already fits is returned as is; widths of three or less are hard
// cut; anything else is cut to maxWidth-3 and gets an ellipsis.
func Truncate(text string, maxWidth int) string {
	text = NormalizeSpace(text)
	if maxWidth <= 0 || text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	if maxWidth <= len(Ellipsis) {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-len(Ellipsis)]) + Ellipsis
}

// Cut returns at most n runes of s without adding an ellipsis.
func Cut(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Width is the number of cells s occupies on the grid.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}

// CenterCol returns the column that centers s on a Cols-wide row.
func CenterCol(s string) int {
	w := Width(s)
	if w >= Cols {
		return 0
	}
	return (Cols - w) / 2
}

// WordWrap breaks text into lines no wider than width. Words longer than
// width are split.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		if len(w) == 0 {
			continue
		}
		switch {
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= width:
			line = append(line, ' ')
			line = append(line, w...)
		default:
			lines = append(lines, string(line))
			line = append([]rune(nil), w...)
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

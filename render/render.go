// Package render provides a cell canvas that renders to the terminal with
// ANSI escape codes.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment specifies text alignment within a given width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Cell represents a single character cell in the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// RGB is a 24-bit terminal color.
type RGB [3]uint8

// Style represents text styling for a cell.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	Reverse   bool
	FgColor   int // ANSI foreground color code (0 = default, 32 = green, 33 = yellow, etc.)

	UseFgRGB bool
	FgRGB    RGB
	UseBgRGB bool
	BgRGB    RGB
}

// BoxStyle defines the characters used for drawing boxes.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TopTee      rune
	BottomTee   rune
	LeftTee     rune
	RightTee    rune
	Cross       rune
}

var (
	SingleBox = BoxStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
		TopTee: '┬', BottomTee: '┴', LeftTee: '├', RightTee: '┤', Cross: '┼',
	}

	DoubleBox = BoxStyle{
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
		TopTee: '╦', BottomTee: '╩', LeftTee: '╠', RightTee: '╣', Cross: '╬',
	}

	ASCIIBox = BoxStyle{
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|',
		TopTee: '+', BottomTee: '+', LeftTee: '+', RightTee: '+', Cross: '+',
	}
)

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// AlignText pads text to width with the given alignment. Text wider than
// width is cut with an ellipsis.
func AlignText(text string, width int, align Alignment) string {
	if StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	pad := width - StringWidth(text)
	if pad <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	var sb strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

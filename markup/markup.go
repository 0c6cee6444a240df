// Package markup defines the 99ML grammar shared by the converter and the
// simulator: screen geometry, tag builders, text fitting helpers and a
// linear tag/text lexer.
//
// A document looks like:
//
//	<99ml>
//	<clr:F:4>
//	<clr:B:4><pos:00:0E>Example Domain
//	<clr:7:4><pos:03:00><a href="https://www.iana.org/domains/example">More information...</a>
//	</99ml>
package markup

import (
	"fmt"
	"strings"
)

// TI-99/4A text mode geometry.
const (
	Rows = 24
	Cols = 40
)

// Rows reserved by the layout.
const (
	TitleRow  = 0
	FooterRow = 0x17
	// LastBodyRow is the last row the converter places page text on. The
	// two rows after it are kept for the footer and a margin.
	LastBodyRow = Rows - 3
)

// Document markers.
const (
	DocOpen  = "<99ml>"
	DocClose = "</99ml>"

	AnchorClose = "</a>"
)

// ClampRow clamps r into [0, Rows-1].
func ClampRow(r int) int {
	return clamp(r, Rows-1)
}

// ClampCol clamps c into [0, Cols-1].
func ClampCol(c int) int {
	return clamp(c, Cols-1)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Hex2 formats n as two uppercase hex digits, clamped to a byte.
func Hex2(n int) string {
	return fmt.Sprintf("%02X", clamp(n, 0xFF))
}

// PosTag returns <pos:RR:CC> for the given cell.
func PosTag(row, col int) string {
	return "<pos:" + Hex2(row) + ":" + Hex2(col) + ">"
}

// ColorTag returns <clr:F:B>. fg and bg are palette codes 0-15.
func ColorTag(fg, bg byte) string {
	return fmt.Sprintf("<clr:%X:%X>", fg&0x0F, bg&0x0F)
}

// ChrTag returns <chr:XX> for a character code below 256.
func ChrTag(c byte) string {
	return "<chr:" + Hex2(int(c)) + ">"
}

// AnchorOpen returns <a href="...">. The href is escaped so that it stays a
// single attribute token.
func AnchorOpen(href string) string {
	return `<a href="` + EscapeHref(href) + `">`
}

var hrefEscaper = strings.NewReplacer(
	`"`, "%22",
	`'`, "%27",
	">", "%3E",
	"<", "%3C",
	" ", "%20",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
)

// EscapeHref percent-escapes the characters that would end an attribute value.
func EscapeHref(href string) string {
	return hrefEscaper.Replace(href)
}

// EscapeText rewrites the tag delimiters in literal text as chr tags so they
// decode as ordinary cells.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			sb.WriteString(ChrTag('<'))
		case '>':
			sb.WriteString(ChrTag('>'))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

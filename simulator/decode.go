// Package simulator interprets 99ML markup into a TI-99/4A text screen:
// a character grid, a parallel color grid and the link spans found on it.
package simulator

import (
	"regexp"
	"strconv"
	"strings"

	"browse99/markup"
	"browse99/palette"
)

// Cursor is a grid position. Col reaches markup.Cols after the last column
// of a row is written; Row reaches markup.Rows once text runs off the bottom.
type Cursor struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ColorPair is the foreground and background code of one cell.
type ColorPair struct {
	Fg palette.Code `json:"fg"`
	Bg palette.Code `json:"bg"`
}

// DefaultColors is the color state at the start of every decode.
var DefaultColors = ColorPair{Fg: palette.DefaultFg, Bg: palette.DefaultBg}

// LinkSpan is the extent of one hyperlink on the grid. The end cell is
// exclusive. A link that runs off the bottom ends at (23, 40).
type LinkSpan struct {
	StartRow int    `json:"startRow"`
	StartCol int    `json:"startCol"`
	EndRow   int    `json:"endRow"`
	EndCol   int    `json:"endCol"`
	Href     string `json:"href"`
	Text     string `json:"text"`
}

// Screen is the result of decoding one document.
type Screen struct {
	Chars  [markup.Rows][markup.Cols]rune
	Colors [markup.Rows][markup.Cols]ColorPair
	Links  []LinkSpan
	// Cursor is where the cursor was left after the last token.
	Cursor Cursor
}

// NewScreen returns a blank screen: spaces in the default colors.
func NewScreen() *Screen {
	s := &Screen{}
	for r := 0; r < markup.Rows; r++ {
		for c := 0; c < markup.Cols; c++ {
			s.Chars[r][c] = ' '
			s.Colors[r][c] = DefaultColors
		}
	}
	return s
}

// openLink accumulates an <a> until its </a>.
type openLink struct {
	active bool
	start  Cursor
	href   string
	text   strings.Builder
}

// decoder is the per-call interpreter state.
type decoder struct {
	screen *Screen
	cursor Cursor
	color  ColorPair
	link   openLink
}

// Decode interprets markup. It never fails: unknown or malformed tags are
// ignored and text that runs off the screen is dropped.
func Decode(src string) *Screen {
	d := &decoder{
		screen: NewScreen(),
		color:  DefaultColors,
	}

	lex := markup.NewLexer(src)
	for {
		tok, ok := lex.Next()
		if !ok {
			break
		}
		switch {
		case tok.IsMarker():
		case tok.Kind == markup.TokenTag:
			d.tag(tok.Value)
		default:
			d.text(tok.Value)
		}
	}

	d.screen.Cursor = d.cursor
	return d.screen
}

func (d *decoder) tag(body string) {
	lower := strings.ToLower(body)

	switch lower {
	case "br", "br/":
		d.cursor.Col = 0
		d.cursor.Row = markup.ClampRow(d.cursor.Row + 1)
		return
	case "p", "/p":
		return
	case "/a":
		d.closeLink()
		return
	case "a":
		d.openLink(body)
		return
	}

	switch {
	case strings.HasPrefix(lower, "a "):
		d.openLink(body)
	case strings.HasPrefix(lower, "pos:"):
		if row, col, ok := parsePos(lower[len("pos:"):]); ok {
			d.cursor = Cursor{Row: markup.ClampRow(row), Col: markup.ClampCol(col)}
		}
	case strings.HasPrefix(lower, "clr:"):
		if fg, bg, ok := parseClr(lower[len("clr:"):]); ok {
			d.color = ColorPair{Fg: fg, Bg: bg}
		}
	case strings.HasPrefix(lower, "chr:"):
		if code, ok := parseHex2(lower[len("chr:"):]); ok {
			d.put(rune(code))
		}
	}
}

// parsePos reads "RR:CC".
func parsePos(s string) (row, col int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	row, ok1 := parseHex2(s[:2])
	col, ok2 := parseHex2(s[3:])
	return row, col, ok1 && ok2
}

// parseClr reads "F:B".
func parseClr(s string) (fg, bg palette.Code, ok bool) {
	if len(s) != 3 || s[1] != ':' {
		return 0, 0, false
	}
	fg, ok1 := palette.FromHexDigit(s[0])
	bg, ok2 := palette.FromHexDigit(s[2])
	return fg, bg, ok1 && ok2
}

func parseHex2(s string) (int, bool) {
	if len(s) != 2 || !isHex(s[0]) || !isHex(s[1]) {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func isHex(b byte) bool {
	_, ok := palette.FromHexDigit(b)
	return ok
}

// attrPattern matches one name=value attribute. Quoted values are consumed
// whole so text inside an href is never read as another attribute.
var attrPattern = regexp.MustCompile(`(?i)([a-z][a-z0-9-]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)

// attrs parses the attributes of an <a ...> tag body. The first occurrence
// of a name wins.
func attrs(body string) map[string]string {
	out := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(body[1:], -1) {
		name := strings.ToLower(m[1])
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = m[2] + m[3] + m[4]
	}
	return out
}

func (d *decoder) openLink(body string) {
	a := attrs(body)
	if pos := strings.ToLower(a["pos"]); len(pos) >= 4 {
		row, rok := parseHex2(pos[:2])
		col, cok := parseHex2(pos[2:4])
		if rok && cok {
			d.cursor = Cursor{Row: markup.ClampRow(row), Col: markup.ClampCol(col)}
		}
	}
	d.link.active = true
	d.link.start = d.cursor
	d.link.href = a["href"]
	d.link.text.Reset()
}

func (d *decoder) closeLink() {
	if !d.link.active {
		return
	}
	start, end := onGrid(d.link.start), onGrid(d.cursor)
	d.screen.Links = append(d.screen.Links, LinkSpan{
		StartRow: start.Row,
		StartCol: start.Col,
		EndRow:   end.Row,
		EndCol:   end.Col,
		Href:     d.link.href,
		Text:     d.link.text.String(),
	})
	d.link.active = false
}

// onGrid maps a cursor past the bottom row to the end of the last row.
func onGrid(c Cursor) Cursor {
	if c.Row >= markup.Rows {
		return Cursor{Row: markup.Rows - 1, Col: markup.Cols}
	}
	return c
}

func (d *decoder) text(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		d.put(r)
	}
}

// put writes r at the cursor and advances. Wrapping is lazy: a cursor past
// the last column moves to the next row only when the next rune arrives.
// Runes past the last row are dropped but still count as link text.
func (d *decoder) put(r rune) {
	if d.link.active {
		d.link.text.WriteRune(r)
	}
	if d.cursor.Row >= markup.Rows {
		return
	}
	if d.cursor.Col >= markup.Cols {
		d.cursor.Col = 0
		d.cursor.Row++
		if d.cursor.Row >= markup.Rows {
			return
		}
	}
	d.screen.Chars[d.cursor.Row][d.cursor.Col] = r
	d.screen.Colors[d.cursor.Row][d.cursor.Col] = d.color
	d.cursor.Col++
}

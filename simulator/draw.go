package simulator

import (
	"strings"

	"browse99/markup"
	"browse99/render"
)

// Text returns the screen as Rows strings of Cols runes each.
func (s *Screen) Text() []string {
	rows := make([]string, markup.Rows)
	for r := range rows {
		rows[r] = string(s.Chars[r][:])
	}
	return rows
}

// String returns the screen text with trailing spaces trimmed from each row.
func (s *Screen) String() string {
	rows := s.Text()
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}
	return strings.Join(rows, "\n")
}

// CellStyle maps a cell's palette colors to a canvas style. Transparent
// backgrounds are left to the terminal.
func CellStyle(c ColorPair, link bool) render.Style {
	fg := c.Fg.RGB()
	st := render.Style{
		UseFgRGB:  true,
		FgRGB:     render.RGB{fg.R, fg.G, fg.B},
		Underline: link,
	}
	if !c.Bg.IsTransparent() {
		bg := c.Bg.RGB()
		st.UseBgRGB = true
		st.BgRGB = render.RGB{bg.R, bg.G, bg.B}
	}
	return st
}

// Draw paints the screen onto the canvas with its top-left cell at (x, y).
// Link cells are underlined.
func (s *Screen) Draw(c *render.Canvas, x, y int) {
	for r := 0; r < markup.Rows; r++ {
		for col := 0; col < markup.Cols; col++ {
			link := s.LinkAt(r, col) != nil
			c.Set(x+col, y+r, s.Chars[r][col], CellStyle(s.Colors[r][col], link))
		}
	}
}

// DrawFramed paints the screen inside a box titled with title. The canvas
// must be at least Cols+2 by Rows+2.
func (s *Screen) DrawFramed(c *render.Canvas, x, y int, title string) {
	c.DrawBoxWithTitle(x, y, markup.Cols+2, markup.Rows+2, title, render.SingleBox, render.Style{Dim: true}, render.Style{Bold: true})
	s.Draw(c, x+1, y+1)
}

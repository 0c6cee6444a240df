// Package viewer is an interactive tcell front end for decoded 99ML
// screens. Links can be followed with the mouse or the keyboard.
package viewer

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"browse99/lineedit"
	"browse99/markup"
	"browse99/palette"
	"browse99/simulator"
)

// Frame size around the 40x24 screen.
const (
	FrameWidth  = markup.Cols + 2
	FrameHeight = markup.Rows + 2
)

// Loader returns the 99ML markup for a source: a URL, a file path or "-".
type Loader func(ctx context.Context, src string) (string, error)

// Viewer holds the page being shown and the navigation history.
type Viewer struct {
	screen  tcell.Screen
	load    Loader
	current string
	doc     *simulator.Screen
	history []string
	focus   int // index into doc.Links, -1 when nothing is focused
	pressed bool
	status  string
	prompt  *lineedit.Editor // address prompt, nil when closed
}

// New returns a viewer drawing on screen. The screen must already be
// initialised.
func New(screen tcell.Screen, load Loader) *Viewer {
	return &Viewer{
		screen: screen,
		load:   load,
		doc:    simulator.NewScreen(),
		focus:  -1,
	}
}

// Current returns the source currently displayed.
func (v *Viewer) Current() string { return v.current }

// Document returns the decoded page currently displayed.
func (v *Viewer) Document() *simulator.Screen { return v.doc }

// Status returns the status line message.
func (v *Viewer) Status() string { return v.status }

// Open loads src and pushes the current page onto the history.
func (v *Viewer) Open(ctx context.Context, src string) error {
	return v.navigate(ctx, src, true)
}

func (v *Viewer) navigate(ctx context.Context, src string, push bool) error {
	v.status = "loading " + src
	v.Draw()

	doc, err := v.load(ctx, src)
	if err != nil {
		v.status = err.Error()
		return err
	}
	if push && v.current != "" && v.current != src {
		v.history = append(v.history, v.current)
	}
	v.current = src
	v.doc = simulator.Decode(doc)
	v.focus = -1
	v.status = ""
	return nil
}

// Back returns to the previous page. It reports false when the history is
// empty.
func (v *Viewer) Back(ctx context.Context) bool {
	if len(v.history) == 0 {
		v.status = "no previous page"
		return false
	}
	prev := v.history[len(v.history)-1]
	v.history = v.history[:len(v.history)-1]
	return v.navigate(ctx, prev, false) == nil
}

// Reload loads the current page again.
func (v *Viewer) Reload(ctx context.Context) error {
	return v.navigate(ctx, v.current, false)
}

// Follow opens the target of a link relative to the current page.
func (v *Viewer) Follow(ctx context.Context, l *simulator.LinkSpan) error {
	if l == nil {
		return nil
	}
	if l.Href == "" {
		v.status = "link has no target"
		return nil
	}
	return v.Open(ctx, Resolve(v.current, l.Href))
}

// Resolve makes href absolute relative to the page at current. URLs resolve
// as URLs and anything else as a file path next to the current file.
func Resolve(current, href string) string {
	href = strings.TrimSpace(href)
	if u, err := url.Parse(href); err == nil && u.Scheme != "" {
		return href
	}
	if base, err := url.Parse(current); err == nil && base.Scheme != "" && base.Host != "" {
		if ref, err := url.Parse(href); err == nil {
			return base.ResolveReference(ref).String()
		}
		return href
	}
	if current == "" || current == "-" || filepath.IsAbs(href) {
		return href
	}
	return filepath.Join(filepath.Dir(current), href)
}

func (v *Viewer) origin() (x, y int) {
	w, _ := v.screen.Size()
	if x = (w - FrameWidth) / 2; x < 0 {
		x = 0
	}
	return x, 0
}

// CellAt maps a terminal position to a grid cell.
func (v *Viewer) CellAt(x, y int) (row, col int, ok bool) {
	x0, y0 := v.origin()
	col = x - x0 - 1
	row = y - y0 - 1
	if row < 0 || row >= markup.Rows || col < 0 || col >= markup.Cols {
		return 0, 0, false
	}
	return row, col, true
}

func (v *Viewer) cycle(step int) {
	n := len(v.doc.Links)
	if n == 0 {
		v.focus = -1
		return
	}
	if v.focus < 0 && step < 0 {
		v.focus = n - 1
		return
	}
	v.focus = ((v.focus+step)%n + n) % n
}

// Focused returns the link selected with Tab, or nil.
func (v *Viewer) Focused() *simulator.LinkSpan {
	if v.focus < 0 || v.focus >= len(v.doc.Links) {
		return nil
	}
	return &v.doc.Links[v.focus]
}

// HandleEvent applies one event and redraws. It returns true when the
// viewer should exit.
func (v *Viewer) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if v.prompt != nil {
			v.handlePrompt(ctx, ev)
			break
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyTab:
			v.cycle(1)
		case tcell.KeyBacktab:
			v.cycle(-1)
		case tcell.KeyEnter:
			v.Follow(ctx, v.Focused())
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'b':
				v.Back(ctx)
			case 'r':
				v.Reload(ctx)
			case 'o':
				v.prompt = lineedit.New()
				v.prompt.Set(v.current)
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.pressed {
			if row, col, ok := v.CellAt(ev.Position()); ok {
				if l := v.doc.LinkAt(row, col); l != nil {
					v.Follow(ctx, l)
				}
			}
		}
		v.pressed = down

	case *tcell.EventResize:
		v.screen.Sync()
	}

	v.Draw()
	return false
}

func (v *Viewer) handlePrompt(ctx context.Context, ev *tcell.EventKey) {
	res := v.prompt.HandleKey(ev)
	switch {
	case res.Cancel:
		v.prompt = nil
	case res.Submit:
		src := strings.TrimSpace(v.prompt.Text())
		v.prompt = nil
		if src != "" {
			v.Open(ctx, src)
		}
	}
}

// Prompting reports whether the address prompt is open.
func (v *Viewer) Prompting() bool { return v.prompt != nil }

// Run draws the page and processes events until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	v.Draw()
	for {
		if ctx.Err() != nil {
			return nil
		}
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if v.HandleEvent(ctx, ev) {
			return nil
		}
	}
}

func color(c palette.Code) tcell.Color {
	rgb := c.RGB()
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// cellStyle is the tcell equivalent of simulator.CellStyle.
func cellStyle(c simulator.ColorPair, link, focused bool) tcell.Style {
	st := tcell.StyleDefault.Foreground(color(c.Fg))
	if !c.Bg.IsTransparent() {
		st = st.Background(color(c.Bg))
	}
	if link {
		st = st.Underline(true)
	}
	if focused {
		st = st.Reverse(true)
	}
	return st
}

// Draw paints the frame, the page and the status line.
func (v *Viewer) Draw() {
	s := v.screen
	s.Clear()
	x0, y0 := v.origin()

	frame := tcell.StyleDefault.Dim(true)
	s.SetContent(x0, y0, '┌', nil, frame)
	s.SetContent(x0+FrameWidth-1, y0, '┐', nil, frame)
	s.SetContent(x0, y0+FrameHeight-1, '└', nil, frame)
	s.SetContent(x0+FrameWidth-1, y0+FrameHeight-1, '┘', nil, frame)
	for x := x0 + 1; x < x0+FrameWidth-1; x++ {
		s.SetContent(x, y0, '─', nil, frame)
		s.SetContent(x, y0+FrameHeight-1, '─', nil, frame)
	}
	for y := y0 + 1; y < y0+FrameHeight-1; y++ {
		s.SetContent(x0, y, '│', nil, frame)
		s.SetContent(x0+FrameWidth-1, y, '│', nil, frame)
	}
	drawString(s, x0+2, y0, " 99ML ", tcell.StyleDefault.Bold(true))

	focused := v.Focused()
	for r := 0; r < markup.Rows; r++ {
		for c := 0; c < markup.Cols; c++ {
			l := v.doc.LinkAt(r, c)
			st := cellStyle(v.doc.Colors[r][c], l != nil, l != nil && focused != nil && *l == *focused)
			s.SetContent(x0+1+c, y0+1+r, v.doc.Chars[r][c], nil, st)
		}
	}

	line := v.current
	if v.status != "" {
		line = v.status
	} else if focused != nil {
		line = "→ " + Resolve(v.current, focused.Href)
	}
	w, _ := s.Size()
	if v.prompt != nil {
		const label = "open: "
		drawString(s, x0, y0+FrameHeight, markup.Cut(label+v.prompt.Text(), w-x0), tcell.StyleDefault.Bold(true))
		s.ShowCursor(x0+len(label)+v.prompt.Cursor(), y0+FrameHeight)
	} else {
		drawString(s, x0, y0+FrameHeight, markup.Cut(line, w-x0), tcell.StyleDefault)
		s.HideCursor()
	}
	drawString(s, x0, y0+FrameHeight+1, "tab: next link  enter/click: follow  o: open  b: back  r: reload  q: quit", tcell.StyleDefault.Dim(true))

	s.Show()
}

func drawString(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

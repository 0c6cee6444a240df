package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type fakeLoader struct {
	pages map[string]string
	calls []string
}

func (f *fakeLoader) load(ctx context.Context, src string) (string, error) {
	f.calls = append(f.calls, src)
	doc, ok := f.pages[src]
	if !ok {
		return "", errors.New("not found: " + src)
	}
	return doc, nil
}

func newTestViewer(t *testing.T) (*Viewer, *fakeLoader, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	f := &fakeLoader{pages: map[string]string{
		"/docs/index.99ml": `<99ml><pos:02:00><a href="page2.99ml">Next</a> <a href="https://example.com/">Web</a><pos:03:00><a>dead</a></99ml>`,
		"/docs/page2.99ml": `<99ml><pos:01:00>Page two<pos:02:00><a href="index.99ml">Home</a></99ml>`,
	}}
	v := New(screen, f.load)
	if err := v.Open(context.Background(), "/docs/index.99ml"); err != nil {
		t.Fatal(err)
	}
	return v, f, screen
}

// click sends a press and release at grid cell (row, col).
func click(v *Viewer, row, col int) {
	x0, y0 := v.origin()
	x, y := x0+1+col, y0+1+row
	v.HandleEvent(context.Background(), tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	v.HandleEvent(context.Background(), tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func key(v *Viewer, k tcell.Key, r rune) bool {
	return v.HandleEvent(context.Background(), tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestResolve(t *testing.T) {
	tests := []struct{ current, href, want string }{
		{"/docs/index.99ml", "page2.99ml", "/docs/page2.99ml"},
		{"docs/index.99ml", "../up.99ml", "up.99ml"},
		{"/docs/index.99ml", "/abs.99ml", "/abs.99ml"},
		{"https://example.com/a/b.99ml", "c.99ml", "https://example.com/a/c.99ml"},
		{"https://example.com/a/b.99ml", "/root", "https://example.com/root"},
		{"/docs/index.99ml", "https://other.org/", "https://other.org/"},
		{"", "page.99ml", "page.99ml"},
		{"-", "page.99ml", "page.99ml"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.current, tt.href); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, expected %q", tt.current, tt.href, got, tt.want)
		}
	}
}

func TestDraw(t *testing.T) {
	v, _, screen := newTestViewer(t)
	x0, y0 := v.origin()

	if x0 != (80-FrameWidth)/2 {
		t.Errorf("frame not centered: x0 = %d", x0)
	}
	r, _, st, _ := screen.GetContent(x0+1, y0+3)
	if r != 'N' {
		t.Errorf("cell (2,0) = %q, expected 'N'", r)
	}
	if _, _, attrs := st.Decompose(); attrs&tcell.AttrUnderline == 0 {
		t.Error("link cell should be underlined")
	}
	if r, _, _, _ := screen.GetContent(x0, y0); r != '┌' {
		t.Errorf("frame corner = %q", r)
	}
}

func TestCellAt(t *testing.T) {
	v, _, _ := newTestViewer(t)
	x0, y0 := v.origin()

	tests := []struct {
		x, y     int
		row, col int
		ok       bool
	}{
		{x0 + 1, y0 + 1, 0, 0, true},
		{x0 + 40, y0 + 24, 23, 39, true},
		{x0, y0 + 1, 0, 0, false},
		{x0 + 41, y0 + 1, 0, 0, false},
		{x0 + 1, y0 + 25, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := v.CellAt(tt.x, tt.y)
		if row != tt.row || col != tt.col || ok != tt.ok {
			t.Errorf("CellAt(%d, %d) = %d, %d, %v, expected %d, %d, %v", tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
}

func TestClickFollowsLink(t *testing.T) {
	v, f, _ := newTestViewer(t)

	click(v, 5, 5) // blank cell
	if v.Current() != "/docs/index.99ml" {
		t.Fatalf("click on blank cell navigated to %q", v.Current())
	}

	click(v, 2, 2)
	if v.Current() != "/docs/page2.99ml" {
		t.Fatalf("current = %q, expected page2", v.Current())
	}
	if got := string(v.Document().Chars[1][0:8]); got != "Page two" {
		t.Errorf("row 1 = %q", got)
	}

	if quit := key(v, tcell.KeyRune, 'b'); quit {
		t.Fatal("b should not quit")
	}
	if v.Current() != "/docs/index.99ml" {
		t.Errorf("after back, current = %q", v.Current())
	}
	if v.Back(context.Background()) {
		t.Error("back with empty history should report false")
	}
	if len(f.calls) != 3 {
		t.Errorf("loader called %d times: %v", len(f.calls), f.calls)
	}
}

func TestHeldButtonFollowsOnce(t *testing.T) {
	v, f, _ := newTestViewer(t)
	x0, y0 := v.origin()
	ev := tcell.NewEventMouse(x0+1, y0+3, tcell.Button1, tcell.ModNone)
	v.HandleEvent(context.Background(), ev)
	v.HandleEvent(context.Background(), ev)
	if len(f.calls) != 2 {
		t.Errorf("loader called %d times, expected 2", len(f.calls))
	}
}

func TestKeyboardNavigation(t *testing.T) {
	v, _, _ := newTestViewer(t)

	if v.Focused() != nil {
		t.Fatal("nothing should be focused after load")
	}
	key(v, tcell.KeyTab, 0)
	if l := v.Focused(); l == nil || l.Href != "page2.99ml" {
		t.Fatalf("first tab focused %+v", l)
	}
	key(v, tcell.KeyTab, 0)
	if l := v.Focused(); l == nil || l.Href != "https://example.com/" {
		t.Fatalf("second tab focused %+v", l)
	}
	key(v, tcell.KeyTab, 0)
	key(v, tcell.KeyTab, 0)
	if l := v.Focused(); l == nil || l.Href != "page2.99ml" {
		t.Fatalf("tab should wrap, focused %+v", l)
	}
	key(v, tcell.KeyBacktab, 0)
	if l := v.Focused(); l == nil || l.Href != "" {
		t.Fatalf("backtab focused %+v", l)
	}

	key(v, tcell.KeyEnter, 0)
	if v.Status() != "link has no target" || v.Current() != "/docs/index.99ml" {
		t.Errorf("dead link: status %q, current %q", v.Status(), v.Current())
	}

	key(v, tcell.KeyTab, 0)
	key(v, tcell.KeyEnter, 0)
	if v.Current() != "/docs/page2.99ml" {
		t.Errorf("enter did not follow, current %q", v.Current())
	}
}

func TestLoadError(t *testing.T) {
	v, _, _ := newTestViewer(t)
	key(v, tcell.KeyTab, 0)
	key(v, tcell.KeyTab, 0)
	key(v, tcell.KeyEnter, 0)

	if v.Current() != "/docs/index.99ml" {
		t.Errorf("failed load changed current to %q", v.Current())
	}
	if v.Status() != "not found: https://example.com/" {
		t.Errorf("status = %q", v.Status())
	}
}

func TestReloadAndQuit(t *testing.T) {
	v, f, _ := newTestViewer(t)
	key(v, tcell.KeyRune, 'r')
	if len(f.calls) != 2 || f.calls[1] != "/docs/index.99ml" {
		t.Errorf("reload calls = %v", f.calls)
	}

	tests := []struct {
		name string
		k    tcell.Key
		r    rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}
	for _, tt := range tests {
		if !key(v, tt.k, tt.r) {
			t.Errorf("%s should quit", tt.name)
		}
	}
}

func TestAddressPrompt(t *testing.T) {
	v, _, _ := newTestViewer(t)

	key(v, tcell.KeyRune, 'o')
	if !v.Prompting() {
		t.Fatal("o should open the address prompt")
	}
	if quit := key(v, tcell.KeyRune, 'q'); quit {
		t.Fatal("q inside the prompt should be text, not quit")
	}
	key(v, tcell.KeyEscape, 0)
	if v.Prompting() || v.Current() != "/docs/index.99ml" {
		t.Fatalf("escape should close the prompt without navigating")
	}

	key(v, tcell.KeyRune, 'o')
	key(v, tcell.KeyCtrlU, 0)
	for _, r := range "/docs/page2.99ml" {
		key(v, tcell.KeyRune, r)
	}
	key(v, tcell.KeyEnter, 0)
	if v.Prompting() {
		t.Error("enter should close the prompt")
	}
	if v.Current() != "/docs/page2.99ml" {
		t.Errorf("current = %q", v.Current())
	}
}

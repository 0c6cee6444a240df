package html

import (
	"strings"
	"testing"

	"browse99/converter"
	"browse99/markup"
	"browse99/simulator"
)

const page = `<!DOCTYPE html>
<html>
<head><title> Test  Page </title><style>p { color: red }</style></head>
<body>
<h1>Welcome</h1>
<p>Hello <b>world</b>, see <a href="/docs">the docs</a>.</p>
<script>var x = "<p>not text</p>";</script>
<div style="display: none">secret</div>
<p hidden>also secret</p>
<p style="color: #ff0000; background-color: navy">Red</p>
</body>
</html>`

func extractString(s, baseURL string) (*converter.PageData, error) {
	return Extract(strings.NewReader(s), baseURL)
}

func TestExtract(t *testing.T) {
	data, err := extractString(page, "https://example.com/page")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if data.Title != "Test Page" {
		t.Errorf("title = %q, expected %q", data.Title, "Test Page")
	}

	expected := []converter.Fragment{
		{Text: "Welcome", Row: 1, Col: 0, IsHeading: true},
		{Text: "Hello", Row: 2, Col: 0},
		{Text: "world", Row: 2, Col: 6},
		{Text: ", see", Row: 2, Col: 11},
		{Text: "the docs", Row: 2, Col: 17, IsLink: true, Href: "https://example.com/docs"},
		{Text: ".", Row: 2, Col: 25},
		{Text: "Red", Row: 3, Col: 0, Color: "#ff0000", BgColor: "navy"},
	}
	if len(data.Fragments) != len(expected) {
		t.Fatalf("got %d fragments, expected %d: %+v", len(data.Fragments), len(expected), data.Fragments)
	}
	for i, want := range expected {
		if data.Fragments[i] != want {
			t.Errorf("fragment %d: got %+v, expected %+v", i, data.Fragments[i], want)
		}
	}

	if len(data.Links) != 1 {
		t.Fatalf("got %d links, expected 1", len(data.Links))
	}
	want := converter.PageLink{Text: "the docs", Href: "https://example.com/docs", Row: 2, Col: 17}
	if data.Links[0] != want {
		t.Errorf("link = %+v, expected %+v", data.Links[0], want)
	}
}

func TestExtractWraps(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("abcdefghi ", 10))
	data, err := extractString("<p>"+words+"</p><p>"+strings.Repeat("z", 50)+"</p>", "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		row  int
		text string
	}{
		{1, strings.TrimSpace(strings.Repeat("abcdefghi ", 4))},
		{2, strings.TrimSpace(strings.Repeat("abcdefghi ", 4))},
		{3, "abcdefghi abcdefghi"},
		{4, strings.Repeat("z", 40)},
		{5, strings.Repeat("z", 10)},
	}
	if len(data.Fragments) != len(tests) {
		t.Fatalf("got %d fragments: %+v", len(data.Fragments), data.Fragments)
	}
	for i, tt := range tests {
		f := data.Fragments[i]
		if f.Row != tt.row || f.Col != 0 || f.Text != tt.text {
			t.Errorf("fragment %d = %+v, expected row %d %q", i, f, tt.row, tt.text)
		}
		if markup.Width(f.Text) > markup.Cols {
			t.Errorf("fragment %d wider than the grid", i)
		}
	}
}

func TestExtractLineBreaks(t *testing.T) {
	data, err := extractString(`<p>a<br>b</p><hr><p>c<img alt="logo">d</p>`, "")
	if err != nil {
		t.Fatal(err)
	}
	expected := []struct {
		text     string
		row, col int
	}{
		{"a", 1, 0},
		{"b", 2, 0},
		{"c", 4, 0},
		{"[logo]", 4, 1},
		{"d", 4, 7},
	}
	if len(data.Fragments) != len(expected) {
		t.Fatalf("got %+v", data.Fragments)
	}
	for i, want := range expected {
		f := data.Fragments[i]
		if f.Text != want.text || f.Row != want.row || f.Col != want.col {
			t.Errorf("fragment %d = %+v, expected %q at (%d,%d)", i, f, want.text, want.row, want.col)
		}
	}
}

func TestExtractStopsAtLastBodyRow(t *testing.T) {
	data, err := extractString(strings.Repeat("<p>line</p>", 40), "")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(data.Fragments), markup.LastBodyRow-FirstRow+1; got != want {
		t.Errorf("got %d fragments, expected %d", got, want)
	}
	for _, f := range data.Fragments {
		if f.Row > markup.LastBodyRow {
			t.Errorf("fragment on reserved row %d", f.Row)
		}
	}
}

func TestStyleHelpers(t *testing.T) {
	tests := []struct {
		style  string
		hidden bool
		fg, bg string
	}{
		{"", false, "", ""},
		{"display:none", true, "", ""},
		{"Visibility: Hidden", true, "", ""},
		{"color: rgb(1, 2, 3) !important", false, "rgb(1, 2, 3)", ""},
		{"background: #000; color:#fff", false, "#fff", "#000"},
	}
	for _, tt := range tests {
		if got := hiddenStyle(tt.style); got != tt.hidden {
			t.Errorf("hiddenStyle(%q) = %v, expected %v", tt.style, got, tt.hidden)
		}
		fg, bg := styleColors(tt.style)
		if fg != tt.fg || bg != tt.bg {
			t.Errorf("styleColors(%q) = %q, %q, expected %q, %q", tt.style, fg, bg, tt.fg, tt.bg)
		}
	}
}

func TestExtractConvert(t *testing.T) {
	data, err := extractString(page, "https://example.com/page")
	if err != nil {
		t.Fatal(err)
	}
	res := converter.Convert(data, "https://example.com/page")
	s := simulator.Decode(res.Markup)

	if got := string(s.Chars[1][0:7]); got != "Welcome" {
		t.Errorf("row 1 = %q", got)
	}
	if l := s.LinkAt(2, 18); l == nil || l.Href != "https://example.com/docs" {
		t.Errorf("LinkAt(2,18) = %+v", l)
	}
	if res.Metadata.LinksFound != 1 || res.Metadata.LinksPlaced != 1 {
		t.Errorf("metadata = %+v", res.Metadata)
	}
}

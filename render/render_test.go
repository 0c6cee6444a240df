package render

import (
	"strings"
	"testing"
)

func TestAlignText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		align    Alignment
		expected string
	}{
		{"left", "hello", 10, AlignLeft, "hello     "},
		{"right", "hello", 10, AlignRight, "     hello"},
		{"center", "hello", 10, AlignCenter, "  hello   "},
		{"center odd", "hi", 7, AlignCenter, "  hi   "},
		{"too wide", "hello world", 6, AlignLeft, "hello…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AlignText(tt.text, tt.width, tt.align)
			if result != tt.expected {
				t.Errorf("got %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	in := "\033[0;38;2;255;255;255mhi\033[0m there"
	if got := StripANSI(in); got != "hi there" {
		t.Errorf("got %q, expected %q", got, "hi there")
	}
}

func TestCanvasPlainText(t *testing.T) {
	c := NewCanvas(10, 4)
	c.WriteString(0, 0, "hello", Style{Bold: true})
	c.WriteString(2, 1, "world!!!!!!!", Style{})
	got := c.PlainText()
	expected := "hello\n  world!!!\n"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestCanvasRenderTrueColor(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, 'A', Style{UseFgRGB: true, FgRGB: RGB{1, 2, 3}, UseBgRGB: true, BgRGB: RGB{4, 5, 6}})
	out := c.Render()
	if !strings.Contains(out, "38;2;1;2;3") || !strings.Contains(out, "48;2;4;5;6") {
		t.Errorf("missing truecolor sequences in %q", out)
	}
	if !strings.HasPrefix(out, "\033[H") {
		t.Errorf("Render should home the cursor: %q", out)
	}
	if strings.HasPrefix(c.RenderInline(), "\033[H") {
		t.Error("RenderInline should not home the cursor")
	}
}

func TestDrawBoxWithTitle(t *testing.T) {
	c := NewCanvas(12, 3)
	c.DrawBoxWithTitle(0, 0, 12, 3, "99ML", ASCIIBox, Style{}, Style{})
	lines := strings.Split(strings.TrimSuffix(c.PlainText(), "\n"), "\n")
	if lines[0] != "+ 99ML ----+" {
		t.Errorf("unexpected top border %q", lines[0])
	}
	if lines[2] != "+----------+" {
		t.Errorf("unexpected bottom border %q", lines[2])
	}
}

func TestTable(t *testing.T) {
	tbl := NewTable("#", "href")
	tbl.BoxStyle = ASCIIBox
	tbl.AddRow("1", "https://example.com")
	tbl.AddRow("2")
	got := tbl.RenderToString()
	expected := strings.Join([]string{
		"+---+---------------------+",
		"| # | href                |",
		"+---+---------------------+",
		"| 1 | https://example.com |",
		"| 2 |                     |",
		"+---+---------------------+",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestTableMaxColumnWidth(t *testing.T) {
	tbl := NewTable("href")
	tbl.MaxColumnWidth = 5
	tbl.AddRow("abcdefgh")
	if w := tbl.TotalWidth(); w != 9 {
		t.Errorf("TotalWidth = %d, expected 9", w)
	}
}

// Package converter lays extracted page text out on the 40x24 grid and
// writes it as 99ML markup.
package converter

import (
	"net/url"
	"sort"
	"strings"

	"browse99/markup"
	"browse99/palette"
)

// Fragment is one piece of visible page text with its target grid cell.
type Fragment struct {
	Text      string `json:"text"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	IsHeading bool   `json:"isHeading"`
	IsLink    bool   `json:"isLink"`
	Href      string `json:"href"` // empty when the fragment is not inside a link
	Color     string `json:"color"`
	BgColor   string `json:"bgColor"`
}

// PageLink is a visible anchor found on the page.
type PageLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// PageData is everything the extractor reports for one page.
type PageData struct {
	Title     string     `json:"title"`
	Fragments []Fragment `json:"textNodes"`
	Links     []PageLink `json:"links"`
}

// Metadata summarizes one conversion.
type Metadata struct {
	Title         string `json:"title"`
	FragmentsSeen int    `json:"textNodesFound"`
	LinksFound    int    `json:"linksFound"`
	LinksPlaced   int    `json:"linksPlaced"`
}

// Result is the markup for a page plus its metadata.
type Result struct {
	Markup   string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Convert encodes extracted page data. LinksFound counts the page's anchor
// inventory when the extractor supplied one.
func Convert(p *PageData, sourceID string) Result {
	if p == nil {
		return Encode(nil, "", sourceID)
	}
	res := Encode(p.Fragments, p.Title, sourceID)
	if len(p.Links) > 0 {
		res.Metadata.LinksFound = len(p.Links)
	}
	return res
}

// Encode places fragments on the grid and returns the markup. It never
// fails: fragments that do not fit are skipped and the document is always
// closed.
func Encode(fragments []Fragment, title, sourceID string) Result {
	var grid [markup.Rows][markup.Cols]bool
	var out []string

	out = append(out, markup.DocOpen, colorTag(palette.DefaultFg))

	if title != "" {
		t := markup.Truncate(title, markup.Cols)
		if t != "" {
			col := markup.CenterCol(t)
			out = append(out, colorTag(palette.Highlight)+markup.PosTag(markup.TitleRow, col)+markup.EscapeText(t))
			mark(&grid, markup.TitleRow, col, markup.Width(t))
		}
	}

	sorted := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		f.Row = markup.ClampRow(f.Row)
		f.Col = markup.ClampCol(f.Col)
		if f.Row == markup.TitleRow {
			continue
		}
		sorted = append(sorted, f)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	found := make(map[string]bool)
	placed := make(map[string]bool)
	for _, f := range fragments {
		if f.IsLink && f.Href != "" {
			found[f.Href] = true
		}
	}

	for _, f := range sorted {
		if f.Row > markup.LastBodyRow {
			continue
		}

		col := f.Col
		for col < markup.Cols && grid[f.Row][col] {
			col++
		}
		if col >= markup.Cols {
			continue
		}

		text := markup.Truncate(f.Text, markup.Cols-col)
		if text == "" {
			continue
		}

		prefix := colorTag(roleColor(f)) + markup.PosTag(f.Row, col)
		if f.IsLink && f.Href != "" && !placed[f.Href] {
			out = append(out, prefix+markup.AnchorOpen(f.Href)+markup.EscapeText(text)+markup.AnchorClose)
			placed[f.Href] = true
		} else {
			out = append(out, prefix+markup.EscapeText(text))
		}
		mark(&grid, f.Row, col, markup.Width(text))
	}

	footer := markup.Cut("Source: "+Hostname(sourceID), markup.Cols)
	out = append(out, colorTag(palette.FooterFg)+markup.PosTag(markup.FooterRow, markup.CenterCol(footer))+markup.EscapeText(footer))
	out = append(out, markup.DocClose)

	return Result{
		Markup: strings.Join(out, "\n"),
		Metadata: Metadata{
			Title:         title,
			FragmentsSeen: len(fragments),
			LinksFound:    len(found),
			LinksPlaced:   len(placed),
		},
	}
}

// roleColor picks the foreground by role. The fragment's CSS colors are
// deliberately not quantized: body text keeps the fixed role palette.
func roleColor(f Fragment) palette.Code {
	switch {
	case f.IsHeading:
		return palette.Highlight
	case f.IsLink:
		return palette.LinkFg
	default:
		return palette.DefaultFg
	}
}

func colorTag(fg palette.Code) string {
	return markup.ColorTag(byte(fg), byte(palette.DefaultBg))
}

func mark(grid *[markup.Rows][markup.Cols]bool, row, col, width int) {
	for i := 0; i < width && col+i < markup.Cols; i++ {
		grid[row][col+i] = true
	}
}

// Hostname returns the host part of a source URL. Sources that are not URLs
// (such as "local" for posted HTML) are returned unchanged.
func Hostname(sourceID string) string {
	u, err := url.Parse(sourceID)
	if err != nil || u.Hostname() == "" {
		return sourceID
	}
	return u.Hostname()
}

// Package html lays a static HTML document out on the 40x24 grid without a
// browser. It is the fallback extractor when Chrome is unavailable: block
// elements start new rows and inline text flows and wraps at word
// boundaries.
package html

import (
	"io"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"browse99/converter"
	"browse99/markup"
)

// FirstRow is the row the flow layout starts on, below the title.
const FirstRow = 1

// removed are never rendered.
const removed = "script, style, noscript, template, svg, iframe, object, [hidden], [aria-hidden=\"true\"]"

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Details: true, atom.Dialog: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Summary: true, atom.Table: true, atom.Tr: true,
	atom.Ul: true,
}

var headings = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// inherited is the state a text node picks up from its ancestors.
type inherited struct {
	heading bool
	href    string
	link    bool
	color   string
	bgColor string
}

type layout struct {
	base  *url.URL
	row   int
	col   int
	space bool // whitespace pending before the next word
	frags []converter.Fragment
}

// Extract parses an HTML document and lays its visible text out as
// fragments. Relative hrefs are resolved against baseURL when it parses.
func Extract(r io.Reader, baseURL string) (*converter.PageData, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var base *url.URL
	if baseURL != "" {
		base, _ = url.Parse(baseURL)
	}

	title := markup.NormalizeSpace(doc.Find("title").First().Text())
	doc.Find(removed).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	l := &layout{base: base, row: FirstRow}
	for _, n := range root.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			l.walk(c, inherited{})
		}
	}

	return &converter.PageData{
		Title:     title,
		Fragments: l.frags,
		Links:     links(root, base, l.frags),
	}, nil
}

func (l *layout) full() bool {
	return l.row > markup.LastBodyRow
}

func (l *layout) walk(n *html.Node, in inherited) {
	if l.full() {
		return
	}
	switch n.Type {
	case html.TextNode:
		l.text(n.Data, in)
		return
	case html.ElementNode:
	default:
		return
	}
	if hiddenStyle(getAttr(n, "style")) {
		return
	}

	switch n.DataAtom {
	case atom.Br:
		l.newline()
		return
	case atom.Hr:
		l.newline()
		l.row++
		return
	case atom.Img:
		if alt := markup.NormalizeSpace(getAttr(n, "alt")); alt != "" {
			l.text("["+alt+"]", in)
		}
		return
	case atom.A:
		if href := getAttr(n, "href"); href != "" {
			in.link = true
			in.href = resolve(l.base, href)
		}
	case atom.Td, atom.Th:
		l.space = true
	}
	if headings[n.DataAtom] {
		in.heading = true
	}
	if c, bg := styleColors(getAttr(n, "style")); c != "" || bg != "" {
		if c != "" {
			in.color = c
		}
		if bg != "" {
			in.bgColor = bg
		}
	}

	block := blockElements[n.DataAtom]
	if block {
		l.newline()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.walk(c, in)
	}
	if block {
		l.newline()
	}
}

// newline ends the current row if anything has been written on it.
func (l *layout) newline() {
	if l.col > 0 {
		l.row++
		l.col = 0
	}
	l.space = false
}

func (l *layout) text(raw string, in inherited) {
	words := strings.Fields(raw)
	if len(words) == 0 {
		if raw != "" && l.col > 0 {
			l.space = true
		}
		return
	}
	if r, _ := utf8.DecodeRuneInString(raw); unicode.IsSpace(r) && l.col > 0 {
		l.space = true
	}

	var piece strings.Builder
	start := l.col
	flush := func() {
		if piece.Len() > 0 && !l.full() {
			l.frags = append(l.frags, converter.Fragment{
				Text:      piece.String(),
				Row:       l.row,
				Col:       start,
				IsHeading: in.heading,
				IsLink:    in.link,
				Href:      in.href,
				Color:     in.color,
				BgColor:   in.bgColor,
			})
		}
		piece.Reset()
	}

	for _, word := range words {
		for _, chunk := range markup.WordWrap(word, markup.Cols) {
			sep := ""
			if l.col > 0 && (piece.Len() > 0 || l.space) {
				sep = " "
			}
			if l.col+len(sep)+markup.Width(chunk) > markup.Cols {
				flush()
				l.newline()
				sep = ""
			}
			if l.full() {
				return
			}
			if piece.Len() == 0 {
				start = l.col + len(sep)
			} else {
				piece.WriteString(sep)
			}
			piece.WriteString(chunk)
			l.col += len(sep) + markup.Width(chunk)
			l.space = false
		}
	}
	flush()

	if r, _ := utf8.DecodeLastRuneInString(raw); unicode.IsSpace(r) {
		l.space = true
	}
}

// links builds the visible anchor inventory, positioned where each href's
// first fragment landed.
func links(root *goquery.Selection, base *url.URL, frags []converter.Fragment) []converter.PageLink {
	placed := make(map[string]converter.Fragment)
	for _, f := range frags {
		if _, ok := placed[f.Href]; f.IsLink && !ok {
			placed[f.Href] = f
		}
	}

	var out []converter.PageLink
	root.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := markup.NormalizeSpace(s.Text())
		href, _ := s.Attr("href")
		if text == "" || href == "" {
			return
		}
		link := converter.PageLink{Text: text, Href: resolve(base, href)}
		if f, ok := placed[link.Href]; ok {
			link.Row, link.Col = f.Row, f.Col
		}
		out = append(out, link)
	})
	return out
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// declarations splits an inline style attribute into lower-cased property
// names and their values.
func declarations(style string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
	}
	return out
}

func hiddenStyle(style string) bool {
	if style == "" {
		return false
	}
	d := declarations(style)
	return strings.EqualFold(d["display"], "none") || strings.EqualFold(d["visibility"], "hidden")
}

func styleColors(style string) (fg, bg string) {
	if style == "" {
		return "", ""
	}
	d := declarations(style)
	bg = d["background-color"]
	if bg == "" {
		bg = d["background"]
	}
	return d["color"], bg
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

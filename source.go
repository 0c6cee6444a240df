package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"browse99/converter"
	"browse99/fetcher"
	"browse99/markup"
	"browse99/render"
	"browse99/simulator"
)

// sampleSource names the built-in sample document.
const sampleSource = "about:sample"

func isFile(src string) bool {
	info, err := os.Stat(src)
	return err == nil && !info.IsDir()
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func looksLikeMarkup(doc string) bool {
	return strings.Contains(strings.ToLower(doc), markup.DocOpen)
}

// loadMarkup returns the 99ML for src. .99ml files and URLs are used as is;
// HTML files, HTML on stdin and other URLs go through the converter.
func loadMarkup(ctx context.Context, src string) (string, error) {
	switch {
	case src == sampleSource:
		return simulator.Sample, nil

	case src == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		if looksLikeMarkup(string(b)) {
			return string(b), nil
		}
		data, err := fetcher.ExtractHTML(ctx, string(b))
		if err != nil {
			return "", err
		}
		return converter.Convert(data, fetcher.LocalSource).Markup, nil

	case isFile(src):
		if isHTMLFile(src) {
			res, err := convertSource(ctx, src)
			return res.Markup, err
		}
		b, err := os.ReadFile(src)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	target := fetcher.NormalizeURL(src)
	if u, err := url.Parse(target); err == nil && strings.HasSuffix(strings.ToLower(u.Path), ".99ml") {
		res, err := fetcher.Simple(ctx, target)
		if err != nil {
			return "", err
		}
		return res.HTML, nil
	}
	res, err := convertSource(ctx, target)
	return res.Markup, err
}

type printOptions struct {
	Border bool
	Color  bool
	Title  string
}

// printScreen writes the decoded screen followed by a table of its links.
func printScreen(w io.Writer, s *simulator.Screen, o printOptions) error {
	width, height := markup.Cols, markup.Rows
	if o.Border {
		width, height = markup.Cols+2, markup.Rows+2
	}
	c := render.NewCanvas(width, height)
	if o.Border {
		s.DrawFramed(c, 0, 0, markup.Cut(o.Title, markup.Cols-4))
	} else {
		s.Draw(c, 0, 0)
	}

	if o.Color {
		if err := c.RenderTo(w); err != nil {
			return err
		}
	} else if _, err := io.WriteString(w, c.PlainText()); err != nil {
		return err
	}

	if len(s.Links) == 0 {
		return nil
	}
	t := render.NewTable("#", "pos", "text", "href")
	t.MaxColumnWidth = 48
	t.SetAlignment(0, render.AlignRight)
	for i, l := range s.Links {
		t.AddRow(fmt.Sprint(i+1), fmt.Sprintf("%02d:%02d", l.StartRow, l.StartCol), l.Text, l.Href)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", t.RenderToString())
	return err
}

// Package fetcher produces the page text layout the converter consumes,
// either by rendering the page in headless Chrome or by fetching the HTML
// over plain HTTP and laying it out statically.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"browse99/converter"
	"browse99/html"
)

// Extraction modes.
const (
	ModeAuto    = "auto"    // browser first, static layout when Chrome is unavailable
	ModeBrowser = "browser" // headless Chrome only
	ModeStatic  = "static"  // plain HTTP and static layout only
)

// ErrBlocked is returned when the fetched page is a bot challenge.
var ErrBlocked = errors.New("blocked")

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML     string
	FinalURL string // URL after following redirects
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	ChromePath     string // Path to Chrome binary (empty = auto-detect)
	Mode           string
	ViewportWidth  int
	ViewportHeight int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		TimeoutSeconds: 30,
		Mode:           ModeAuto,
		ViewportWidth:  800,
		ViewportHeight: 600,
	}
}

// Package-level options (set via Configure at startup)
var opts = DefaultOptions()

// Configure sets the package-level options. Zero values keep the defaults.
func Configure(o Options) {
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	switch o.Mode {
	case ModeAuto, ModeBrowser, ModeStatic:
		opts.Mode = o.Mode
	}
	if o.ViewportWidth > 0 {
		opts.ViewportWidth = o.ViewportWidth
	}
	if o.ViewportHeight > 0 {
		opts.ViewportHeight = o.ViewportHeight
	}
	opts.ChromePath = o.ChromePath // Can be empty
}

// Timeout returns the currently configured timeout duration.
func Timeout() time.Duration {
	return time.Duration(opts.TimeoutSeconds) * time.Second
}

// NormalizeURL adds https:// to addresses typed without a scheme.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

// Simple fetches a URL using standard HTTP (fast, low bandwidth).
func Simple(ctx context.Context, targetURL string) (*FetchResult, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	client := &http.Client{Timeout: Timeout()}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: %s", targetURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &FetchResult{
		HTML:     string(body),
		FinalURL: resp.Request.URL.String(),
	}, nil
}

// IsBlockedResponse checks if the HTML indicates a blocked/challenged page.
func IsBlockedResponse(html string) (bool, string) {
	switch {
	case strings.Contains(html, "unusual traffic from your computer"), strings.Contains(html, "detected unusual traffic"):
		return true, "Google CAPTCHA"
	case strings.Contains(html, "recaptcha") && len(html) < 10000:
		return true, "reCAPTCHA challenge"
	case strings.Contains(html, "Just a moment..."), strings.Contains(html, "Checking your browser"), strings.Contains(html, "cf-browser-verification"):
		return true, "Cloudflare challenge"
	case strings.Contains(html, "captcha-delivery.com"), strings.Contains(html, "DataDome"):
		return true, "DataDome bot protection"
	case strings.Contains(html, "perimeterx"), strings.Contains(html, "px-captcha"):
		return true, "PerimeterX bot protection"
	}
	return false, ""
}

// Static fetches the page over HTTP and lays it out without a browser.
func Static(ctx context.Context, targetURL string) (*converter.PageData, error) {
	res, err := Simple(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	if blocked, reason := IsBlockedResponse(res.HTML); blocked {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, reason)
	}
	return html.Extract(strings.NewReader(res.HTML), res.FinalURL)
}

// Extract produces page data for a URL according to the configured mode.
func Extract(ctx context.Context, targetURL string) (*converter.PageData, error) {
	switch opts.Mode {
	case ModeStatic:
		return Static(ctx, targetURL)
	case ModeBrowser:
		return Browser(ctx, targetURL)
	}

	data, err := Browser(ctx, targetURL)
	if err == nil || errors.Is(err, ErrBlocked) || ctx.Err() != nil {
		return data, err
	}
	log.Printf("fetcher: browser extraction of %s failed, using static layout: %v", targetURL, err)
	return Static(ctx, targetURL)
}

// ExtractHTML produces page data for an HTML document according to the
// configured mode.
func ExtractHTML(ctx context.Context, doc string) (*converter.PageData, error) {
	switch opts.Mode {
	case ModeStatic:
		return html.Extract(strings.NewReader(doc), "")
	case ModeBrowser:
		return BrowserContent(ctx, doc)
	}

	data, err := BrowserContent(ctx, doc)
	if err == nil || ctx.Err() != nil {
		return data, err
	}
	log.Printf("fetcher: browser extraction of posted HTML failed, using static layout: %v", err)
	return html.Extract(strings.NewReader(doc), "")
}

// LocalSource is the source id of documents that did not come from a URL.
const LocalSource = "local"

// SourceID is the footer source for a URL: the URL itself, or LocalSource
// for anything that is not an absolute URL.
func SourceID(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return LocalSource
	}
	return target
}

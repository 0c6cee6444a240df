package fetcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"browse99/converter"
	"browse99/markup"
)

// settleDelay gives client-side rendering a moment after the body is ready.
const settleDelay = 1500 * time.Millisecond

// newProfile creates a throwaway Chrome profile directory. Each extraction
// gets its own so concurrent browsers never share a profile lock.
func newProfile() (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "browse99-chrome-")
	if err != nil {
		return "", nil, fmt.Errorf("chrome profile: %w", err)
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// stealthScript masks the most common headless-automation fingerprints.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
window.chrome = { runtime: {}, loadTimes: function() {}, csi: function() {}, app: {} };
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(screen, 'availWidth', { get: () => window.innerWidth });
Object.defineProperty(screen, 'availHeight', { get: () => window.innerHeight });
`

// extractScript walks the rendered text nodes and maps each one to the grid
// cell under its bounding box. It evaluates to a value shaped like
// converter.PageData.
var extractScript = fmt.Sprintf(`(() => {
  const cols = %d, rows = %d;
  const vw = window.innerWidth, vh = window.innerHeight;
  const cw = vw / cols, ch = vh / rows;
  const clamp = (v, max) => Math.max(0, Math.min(max, v));
  const skip = new Set(['SCRIPT', 'STYLE', 'NOSCRIPT', 'META', 'TEMPLATE']);
  const visible = (el) => {
    const s = window.getComputedStyle(el);
    return s.display !== 'none' && s.visibility !== 'hidden' && s.opacity !== '0';
  };
  const out = { title: document.title || '', textNodes: [], links: [] };
  const walker = document.createTreeWalker(document.body || document.documentElement, NodeFilter.SHOW_TEXT);
  let node;
  while ((node = walker.nextNode())) {
    const text = node.textContent.trim();
    const parent = node.parentElement;
    if (!text || !parent || skip.has(parent.tagName) || !visible(parent)) continue;
    const range = document.createRange();
    range.selectNodeContents(node);
    const rect = range.getBoundingClientRect();
    if (rect.width === 0 || rect.height === 0) continue;
    const style = window.getComputedStyle(parent);
    const link = parent.closest('a');
    out.textNodes.push({
      text: text,
      row: clamp(Math.floor(rect.top / ch), rows - 1),
      col: clamp(Math.floor(rect.left / cw), cols - 1),
      isHeading: /^H[1-6]$/.test(parent.tagName),
      isLink: !!link,
      href: link ? link.href : '',
      color: style.color,
      bgColor: style.backgroundColor,
    });
  }
  document.querySelectorAll('a[href]').forEach((a) => {
    const text = a.textContent.trim();
    if (!text || !visible(a)) return;
    const rect = a.getBoundingClientRect();
    out.links.push({
      text: text,
      href: a.href,
      row: clamp(Math.floor(rect.top / ch), rows - 1),
      col: clamp(Math.floor(rect.left / cw), cols - 1),
    });
  });
  return out;
})()`, markup.Cols, markup.Rows)

func allocatorOptions(profile string) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("password-store", "basic"),
		chromedp.Flag("use-mock-keychain", true),
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
		chromedp.UserDataDir(profile),
	}
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	return allocOpts
}

// Browser renders targetURL in headless Chrome and extracts its text layout.
func Browser(ctx context.Context, targetURL string) (*converter.PageData, error) {
	data, err := runExtraction(ctx, chromedp.Navigate(targetURL))
	if err != nil {
		return nil, fmt.Errorf("browser fetch %s: %w", targetURL, err)
	}
	if blocked, reason := IsBlockedResponse(data.Title); blocked {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, reason)
	}
	return data, nil
}

// BrowserContent renders a supplied HTML document in headless Chrome and
// extracts its text layout.
func BrowserContent(ctx context.Context, doc string) (*converter.PageData, error) {
	load := chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
	})
	data, err := runExtraction(ctx, chromedp.Navigate("about:blank"), load)
	if err != nil {
		return nil, fmt.Errorf("browser render: %w", err)
	}
	return data, nil
}

func runExtraction(ctx context.Context, load ...chromedp.Action) (*converter.PageData, error) {
	profile, cleanup, err := newProfile()
	if err != nil {
		return nil, err
	}
	// Runs after allocCancel has waited for Chrome to exit.
	defer cleanup()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(profile)...)
	defer allocCancel()

	// Browser fetches get extra time on top of the HTTP timeout.
	ctx, cancel := context.WithTimeout(allocCtx, Timeout()+15*time.Second)
	defer cancel()

	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		})),
		chromedp.EmulateViewport(int64(opts.ViewportWidth), int64(opts.ViewportHeight)),
	}
	actions = append(actions, load...)

	var data converter.PageData
	actions = append(actions,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.Evaluate(extractScript, &data),
	)

	if err := chromedp.Run(ctx, actions...); err != nil {
		return nil, err
	}
	return &data, nil
}

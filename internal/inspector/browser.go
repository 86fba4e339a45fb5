// Package inspector drives a headless browser to capture page HTML, visible
// text, computed styles, and screenshots, and fans inspection out across
// competitor URLs with skip-on-failure semantics.
package inspector

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/config"
	"github.com/sells-group/proposal-cli/internal/model"
)

// Browser is the abstract page-capture capability the pipeline consumes:
// open a page, get its HTML, computed styles, text, and a screenshot. The
// implementation owns session lifecycle and must release the session on
// every exit path.
type Browser interface {
	CapturePage(ctx context.Context, url string) (*model.CapturedPage, error)
	Close()
}

// styleCaptureJS collects computed style records for body descendants.
// The record limit keeps giant pages from producing unbounded payloads.
const styleCaptureJS = `(() => {
	const props = ['color', 'background-color', 'font-family', 'font-size',
		'font-weight', 'text-align', 'display', 'position', 'margin', 'padding'];
	const out = [];
	const nodes = document.querySelectorAll('body *');
	const limit = %d;
	for (let i = 0; i < nodes.length && out.length < limit; i++) {
		const el = nodes[i];
		const cs = window.getComputedStyle(el);
		const rec = {tag: el.tagName.toLowerCase()};
		if (el.id) rec.id = el.id;
		if (el.className && typeof el.className === 'string') rec.class = el.className;
		for (const p of props) {
			const v = cs.getPropertyValue(p);
			if (v) rec[p] = v;
		}
		out.push(rec);
	}
	return out;
})()`

// perfCaptureJS reads navigation timing metrics. LCP needs an observer set
// up before load, so it is reported as zero here.
const perfCaptureJS = `(() => {
	const nav = performance.getEntriesByType('navigation')[0];
	const paint = performance.getEntriesByType('paint')
		.find(e => e.name === 'first-contentful-paint');
	return {
		first_contentful_paint: paint ? paint.startTime : 0,
		largest_contentful_paint: 0,
		time_to_first_byte: nav ? nav.responseStart : 0,
		time_to_interactive: nav ? nav.domInteractive : 0,
	};
})()`

// Chrome implements Browser on chromedp. A single exec allocator is shared;
// each CapturePage call runs in a fresh browser context with its own timeout
// so that one stuck page cannot poison the next.
type Chrome struct {
	cfg      config.BrowserConfig
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewChrome creates a Chrome browser from config.
func NewChrome(cfg config.BrowserConfig) *Chrome {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Chrome{cfg: cfg, allocCtx: allocCtx, cancel: cancel}
}

// Close releases the shared allocator and any remaining browser processes.
func (c *Chrome) Close() {
	c.cancel()
}

// CapturePage navigates to url, waits for the document body, and captures
// HTML, visible text, computed styles, timing metrics, and a screenshot.
// The browser context is cancelled on every exit path, including timeouts.
func (c *Chrome) CapturePage(ctx context.Context, url string) (*model.CapturedPage, error) {
	taskCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	timeoutCtx, cancelTimeout := context.WithTimeout(taskCtx, c.cfg.PageTimeout())
	defer cancelTimeout()

	// Honor caller cancellation as well as the per-page timeout.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelTimeout()
		case <-done:
		}
	}()

	page := &model.CapturedPage{URL: url}
	styleJS := styleScript(c.cfg.MaxStyleRecords)

	err := chromedp.Run(timeoutCtx,
		chromedp.EmulateViewport(int64(c.cfg.ViewportWidth), int64(c.cfg.ViewportHeight)),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
		chromedp.Text("body", &page.Text, chromedp.ByQuery),
		chromedp.Evaluate(styleJS, &page.Styles),
		chromedp.Evaluate(perfCaptureJS, &page.Performance),
		chromedp.CaptureScreenshot(&page.Screenshot),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "inspector: capture %s", url)
	}

	zap.L().Debug("inspector: page captured",
		zap.String("url", url),
		zap.Int("style_records", len(page.Styles)),
		zap.Int("html_bytes", len(page.HTML)),
	)
	return page, nil
}

func styleScript(limit int) string {
	if limit <= 0 {
		limit = 2000
	}
	return fmt.Sprintf(styleCaptureJS, limit)
}

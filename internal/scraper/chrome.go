package scraper

import (
	"context"

	"github.com/chromedp/chromedp"
)

// NewBrowserContext spawns a fresh headless browser tab under parent. The
// returned cancel tears down both the tab and the browser process and must
// run on every exit path; travel sites render listings with JavaScript, so
// a plain HTTP GET is not enough.
func NewBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// OrNA maps an absent extraction to the "N/A" placeholder. Field lookups
// return present-or-absent values; a missing field never fails a scrape.
func OrNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

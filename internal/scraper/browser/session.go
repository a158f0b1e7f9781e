// Package browser owns the headless Chrome session the scraper drives.
package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/chromedp"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Session is a single headless Chrome instance. It is not safe for
// concurrent use; the pipeline drives it strictly sequentially.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// NewSession starts headless Chrome. The caller owns the session and must
// Close it on every exit path.
func NewSession(ctx context.Context, userAgent string) (*Session, error) {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser process up front so a broken Chrome install fails
	// here instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	slog.Info("Chrome browser opened in headless mode")
	return &Session{ctx: browserCtx, cancel: cancel, allocCancel: allocCancel}, nil
}

// run executes chromedp actions, honoring any deadline on the caller ctx.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := s.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url in the browser tab.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// HTML returns the rendered page source.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("page source: %w", err)
	}
	return html, nil
}

// Texts returns the text content of every element matching selector on the
// current page. Used by live condition polls, where the rendered values
// change without navigation.
func (s *Session) Texts(ctx context.Context, selector string) ([]string, error) {
	script := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(function(e) { return e.textContent })`,
		selector,
	)
	var texts []string
	if err := s.run(ctx, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return texts, nil
}

// Close tears down the browser. Shutdown failures are logged and swallowed.
func (s *Session) Close() {
	if err := chromedp.Cancel(s.ctx); err != nil {
		slog.Warn("Error while closing browser - maybe closed?", "error", err)
	} else {
		slog.Info("Browser closed")
	}
	s.cancel()
	s.allocCancel()
}

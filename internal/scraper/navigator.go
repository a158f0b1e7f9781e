package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"oddsharvest/internal/pkg/config"
	"oddsharvest/internal/scraper/dom"
)

// readinessProbes is the fallback chain used to decide whether a page has
// rendered. The site serves different markup versions, so the probe accepts
// the first selector that resolves to anything at all.
var readinessProbes = []dom.Strategy{
	{Name: "login button", Selector: ".button-dark"},
	{Name: "login link", Selector: `a[href*="login"]`},
	{Name: "main container", Selector: `div[class*="main"]`},
	{Name: "content container", Selector: `div[class*="content"]`},
	{Name: "navigation", Selector: "nav"},
	{Name: "header", Selector: "header"},
	{Name: "results table", Selector: "table"},
	{Name: "odds container", Selector: `div[class*="odds"]`},
}

// Page is one successfully rendered page: its raw source and the parsed
// document queries run against.
type Page struct {
	URL  string
	HTML string
	Doc  *goquery.Document
}

// Navigator wraps a single page-load attempt with bounded retries and a
// rendered-content probe. A failed load is never fatal; callers skip the
// affected page and continue.
type Navigator struct {
	session    Session
	settle     time.Duration
	retries    int
	dnsBackoff time.Duration
	probes     []dom.Strategy
}

func NewNavigator(session Session, cfg *config.ScraperConfig) *Navigator {
	return &Navigator{
		session:    session,
		settle:     cfg.PageSettle,
		retries:    cfg.NavRetries,
		dnsBackoff: cfg.DNSBackoff,
		probes:     readinessProbes,
	}
}

// Load navigates to url and reports whether the page rendered.
func (n *Navigator) Load(ctx context.Context, url string) bool {
	_, ok := n.LoadPage(ctx, url)
	return ok
}

// LoadPage is Load plus the rendered page for further extraction.
//
// Per attempt: navigate, wait the settle duration for client-side rendering
// (the site exposes no network-idle signal), then probe the readiness
// fallback chain. DNS failures back off before the next attempt; any other
// failure moves straight on. After the attempt budget the page is given up
// on and the failure logged.
func (n *Navigator) LoadPage(ctx context.Context, url string) (*Page, bool) {
	for attempt := 1; attempt <= n.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, false
		}

		if err := n.session.Navigate(ctx, url); err != nil {
			if isDNSError(err) {
				slog.Warn("DNS resolution failed", "url", url, "attempt", attempt, "max", n.retries)
				sleep(ctx, n.dnsBackoff)
				continue
			}
			slog.Warn("Navigation error", "url", url, "attempt", attempt, "error", err)
			continue
		}

		sleep(ctx, n.settle)

		html, err := n.session.HTML(ctx)
		if err != nil {
			slog.Warn("Failed to read page source", "url", url, "attempt", attempt, "error", err)
			continue
		}
		doc, err := dom.Parse(html)
		if err != nil {
			slog.Warn("Failed to parse page source", "url", url, "attempt", attempt, "error", err)
			continue
		}

		if _, probe, ok := dom.FirstMatch(doc, n.probes); ok {
			slog.Debug("Page ready", "url", url, "probe", probe)
			return &Page{URL: url, HTML: html, Doc: doc}, true
		}
		slog.Warn("No readiness probe matched", "url", url, "attempt", attempt)
	}

	slog.Error("Failed to load page", "url", url, "attempts", n.retries)
	return nil, false
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// Chrome reports resolver failures as a net error code in the message.
	return strings.Contains(err.Error(), "ERR_NAME_NOT_RESOLVED")
}

// Package scraper implements the crawl-and-extract pipeline: season link
// discovery, pagination resolution, resilient page navigation and game
// record assembly.
package scraper

import "context"

// Session is the browser capability the pipeline drives. *browser.Session
// implements it. The session is a single shared resource passed explicitly
// to each component; sequential execution is the only synchronization.
type Session interface {
	// Navigate loads url in the browser tab.
	Navigate(ctx context.Context, url string) error

	// HTML returns the rendered source of the current page.
	HTML(ctx context.Context) (string, error)

	// Texts returns the text content of elements matching selector on the
	// current page, re-evaluated against the live DOM.
	Texts(ctx context.Context, selector string) ([]string, error)
}

package scraper

import (
	"context"
	"fmt"
	"time"

	"oddsharvest/internal/pkg/config"
)

// fakeSession serves canned HTML per URL and scripted navigation errors.
type fakeSession struct {
	pages   map[string]string     // url -> rendered html
	navErrs map[string][]error    // url -> errors consumed attempt by attempt
	texts   map[string][][]string // selector -> responses consumed poll by poll

	current string
	visits  []string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		pages:   map[string]string{},
		navErrs: map[string][]error{},
		texts:   map[string][][]string{},
	}
}

func (f *fakeSession) Navigate(ctx context.Context, url string) error {
	f.visits = append(f.visits, url)
	if errs := f.navErrs[url]; len(errs) > 0 {
		err := errs[0]
		f.navErrs[url] = errs[1:]
		if err != nil {
			return err
		}
	}
	if _, ok := f.pages[url]; !ok {
		return fmt.Errorf("net::ERR_ABORTED loading %s", url)
	}
	f.current = url
	return nil
}

func (f *fakeSession) HTML(ctx context.Context) (string, error) {
	return f.pages[f.current], nil
}

func (f *fakeSession) Texts(ctx context.Context, selector string) ([]string, error) {
	responses := f.texts[selector]
	if len(responses) == 0 {
		return nil, nil
	}
	// Hold the last response once the script runs out.
	resp := responses[0]
	if len(responses) > 1 {
		f.texts[selector] = responses[1:]
	}
	return resp, nil
}

func testConfig() *config.ScraperConfig {
	return &config.ScraperConfig{
		BaseURL:          "https://www.oddsportal.com",
		SportPath:        "/american-football/",
		PossibleOutcomes: 2,
		PageSettle:       time.Millisecond,
		NavRetries:       3,
		DNSBackoff:       time.Millisecond,
		PercentTimeout:   50 * time.Millisecond,
	}
}

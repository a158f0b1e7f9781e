package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"oddsharvest/internal/pkg/config"
	"oddsharvest/internal/pkg/models"
	"oddsharvest/internal/scraper/dom"
)

// seasonLinkStrategies locate season links on a league results root. Tried
// in priority order; the first strategy with any matches wins.
var seasonLinkStrategies = []dom.Strategy{
	{Name: "results anchors", Selector: `a[href*="/results/"]`},
	{Name: "seasons container", Selector: `div[class*="seasons"] a`},
	{Name: "filter container", Selector: `div[class*="filter"] a`},
	{Name: "tournament navigation", Selector: `div[class*="tournament-nav"] a`},
}

const (
	noDataSelector = "div.message-info > ul > li > div.cms"
	noDataText     = "No data available"

	paginationSelector = "div#pagination > a"

	// lastPageGlyph marks the "jump to last page" pagination anchor.
	lastPageGlyph = "»|"
	pageAttr      = "x-page"
)

// ErrPaginationFormat reports that pagination anchors exist but none carries
// the expected last-page marker. The page-numbering scheme itself has
// changed, so there is no safe fallback and the season cannot be resolved.
var ErrPaginationFormat = errors.New("pagination format not recognized")

// Crawler discovers season links for a league and expands each season's URL
// list to cover every results page.
type Crawler struct {
	nav              *Navigator
	baseURL          string
	possibleOutcomes int
	debug            *DebugSink
}

func NewCrawler(nav *Navigator, cfg *config.ScraperConfig, debug *DebugSink) *Crawler {
	return &Crawler{
		nav:              nav,
		baseURL:          strings.TrimSuffix(cfg.BaseURL, "/"),
		possibleOutcomes: cfg.PossibleOutcomes,
		debug:            debug,
	}
}

// DiscoverSeasons loads the league results root and extracts one Season per
// season link. An unreachable root or a root without recognizable season
// links yields an empty result, never an error.
func (c *Crawler) DiscoverSeasons(ctx context.Context, leagueURL string) []*models.Season {
	slog.Info("Getting all seasons for league", "url", leagueURL)

	page, ok := c.nav.LoadPage(ctx, leagueURL)
	if !ok {
		slog.Error("League results page loaded unsuccessfully", "url", leagueURL)
		return nil
	}
	c.debug.Dump("league_root.html", page.HTML)

	sel, strategy, ok := dom.FirstMatch(page.Doc, seasonLinkStrategies)
	if !ok {
		slog.Warn("No season links found - check the HTML structure", "url", leagueURL)
		return nil
	}
	slog.Info("Found season links", "strategy", strategy, "count", sel.Length())

	var seasons []*models.Season
	for _, a := range dom.Anchors(sel) {
		if a.Text == "" || a.Href == "" {
			continue
		}
		season, err := models.NewSeason(a.Text, c.absURL(a.Href), c.possibleOutcomes)
		if err != nil {
			slog.Warn("Skipping season link", "text", a.Text, "error", err)
			continue
		}
		seasons = append(seasons, season)
		slog.Info("Added season", "name", season.Name, "url", season.URLs[0])
	}
	return seasons
}

// ResolvePagination expands season.URLs from the single results root to the
// full ordered page list. The season is left untouched when its first page
// is unreachable, reports no data, or has no real pagination. The only
// error returned is ErrPaginationFormat.
func (c *Crawler) ResolvePagination(ctx context.Context, season *models.Season) error {
	firstURL := season.URLs[0]

	page, ok := c.nav.LoadPage(ctx, firstURL)
	if !ok {
		slog.Error("Season results page unreachable", "season", season.Name, "url", firstURL)
		return nil
	}
	c.debug.Dump("season_first_page.html", page.HTML)

	msg := page.Doc.Find(noDataSelector)
	if msg.Length() > 0 && strings.TrimSpace(msg.First().Text()) == noDataText {
		slog.Warn(`Found "No data available", skipping`, "season", season.Name, "url", firstURL)
		return nil
	}

	links := page.Doc.Find(paginationSelector)
	if links.Length() <= 1 {
		// Single-page season.
		return nil
	}

	lastPage := -1
	lastURL := ""
	for i := links.Length() - 1; i >= 0; i-- {
		link := links.Eq(i)
		span := link.Find("span")
		if span.Length() == 0 || !strings.Contains(span.Text(), lastPageGlyph) {
			continue
		}
		attr, ok := link.Attr(pageAttr)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(attr))
		if err != nil || n < 2 {
			continue
		}
		href, _ := link.Attr("href")
		lastPage = n
		lastURL = firstURL + href
		break
	}
	if lastPage == -1 {
		slog.Error("Could not locate final page URL", "season", season.Name, "url", firstURL)
		return fmt.Errorf("%w: %s", ErrPaginationFormat, firstURL)
	}

	lastSegment := "page/" + strconv.Itoa(lastPage)
	for i := 2; i < lastPage; i++ {
		pageURL := strings.Replace(lastURL, lastSegment, "page/"+strconv.Itoa(i), 1)
		season.URLs = append(season.URLs, pageURL)
	}
	season.URLs = append(season.URLs, lastURL)

	slog.Info("Pagination resolved", "season", season.Name, "pages", len(season.URLs))
	return nil
}

func (c *Crawler) absURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return c.baseURL + href
	}
	return href
}

package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"oddsharvest/internal/pkg/config"
	"oddsharvest/internal/pkg/models"
	"oddsharvest/internal/pkg/odds"
	"oddsharvest/internal/scraper/dom"
)

const (
	eventRowSelector = `div[class*="eventRow"]`
	participantSel   = "p.participant-name"
	scoreSelector    = `div[class*="flex gap-1 font-bold"]`
	rowOddsSelector  = `p[class*="height-content !text-black-main"]`

	// The average-odds detail view renders a bookmaker table; the row
	// labeled "Average" carries the values we price games with.
	averageOddsLabel    = "Average"
	averageOddsValueSel = "p.height-content"

	percentSelector = `div[class="height-content absolute w-full cursor-pointer text-center"]`

	// Detail-page view fragments: average odds and public betting split.
	averageOddsView = "#home-away;8"
	publicView      = "#home-away;1"

	// Scores are rendered with an en dash between home and away.
	scoreSeparator = "–"
)

// Assembler walks a season's results pages, locates event rows and emits a
// validated Game per row. Each row may trigger up to two detail-page
// navigations (average odds, public betting percentage).
type Assembler struct {
	nav            *Navigator
	session        Session
	baseURL        string
	sportPath      string
	percentTimeout time.Duration
	debug          *DebugSink
}

func NewAssembler(nav *Navigator, session Session, cfg *config.ScraperConfig, debug *DebugSink) *Assembler {
	return &Assembler{
		nav:            nav,
		session:        session,
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		sportPath:      cfg.SportPath,
		percentTimeout: cfg.PercentTimeout,
		debug:          debug,
	}
}

// Populate scrapes every page in season.URLs in order and appends complete
// games to the season. Unloadable pages and unparsable rows are skipped;
// partial results are always preferred over aborting the run.
func (a *Assembler) Populate(ctx context.Context, season *models.Season) {
	for pageIdx, url := range season.URLs {
		if ctx.Err() != nil {
			return
		}

		page, ok := a.nav.LoadPage(ctx, url)
		if !ok {
			slog.Warn("Failed to load results page", "url", url)
			continue
		}
		a.debug.Dump(fmt.Sprintf("results_page_%d.html", pageIdx+1), page.HTML)

		rows := page.Doc.Find(eventRowSelector)
		slog.Debug("Located event rows", "url", url, "rows", rows.Length())

		before := len(season.Games)
		rows.Each(func(i int, row *goquery.Selection) {
			game, err := a.assembleRow(ctx, season, url, row)
			if err != nil {
				slog.Warn("Failed to parse game row", "url", url, "row", i, "error", err)
				return
			}
			if !game.Complete() {
				slog.Debug("Dropping incomplete game",
					"url", url, "row", i, "home", game.TeamHome, "away", game.TeamAway)
				return
			}
			season.AddGame(game)
			slog.Debug("Added game", "home", game.TeamHome, "away", game.TeamAway)
		})

		slog.Info("Processed results page", "url", url, "games", len(season.Games)-before)
	}
}

// assembleRow builds one Game from an event row. Field-level extraction
// failures leave the field unset; only a panic fails the whole row.
func (a *Assembler) assembleRow(ctx context.Context, season *models.Season, pageURL string, row *goquery.Selection) (game *models.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			game, err = nil, fmt.Errorf("row processing panicked: %v", r)
		}
	}()

	game = &models.Game{}

	link := a.eventLink(row)
	if link != "" {
		game.GameURL = link
		a.extractAverageOdds(ctx, game, season.PossibleOutcomes)
	}

	a.extractTeams(game, row)
	a.extractScore(game, row, pageURL)
	a.extractFinalOdds(game, row, season.PossibleOutcomes)

	game.Outcome = models.DeriveOutcome(game.ScoreHome, game.ScoreAway)

	if link != "" {
		a.extractPublicPercent(ctx, game)
	}

	game.RetrievalDatetime = time.Now()
	game.RetrievalURL = pageURL
	return game, nil
}

// eventLink returns the absolute event detail URL from the row, or "".
func (a *Assembler) eventLink(row *goquery.Selection) string {
	sel := fmt.Sprintf(`a[href*=%q]`, a.sportPath)
	href, ok := row.Find(sel).First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return a.baseURL + href
	}
	return href
}

// extractAverageOdds loads the average-odds detail view and prices the
// values from the row anchored on the "Average" label. Unparsable values
// leave only their own field unset.
func (a *Assembler) extractAverageOdds(ctx context.Context, game *models.Game, possibleOutcomes int) {
	url := game.GameURL + averageOddsView
	page, ok := a.nav.LoadPage(ctx, url)
	if !ok {
		slog.Warn("Failed to load average odds view", "url", url)
		return
	}

	values, err := dom.LabeledGroup(page.Doc, averageOddsLabel, averageOddsValueSel)
	if err != nil {
		slog.Warn("Average odds row not found", "url", url, "error", err)
		return
	}

	game.OddsHome = normalizeAt(values, 0, "home", url)
	game.OddsAway = normalizeAt(values, 1, "away", url)
	if possibleOutcomes == 3 {
		game.OddsDraw = normalizeAt(values, 2, "draw", url)
	}
}

// normalizeAt prices values[i], or returns nil with a warning.
func normalizeAt(values []string, i int, field, url string) *int {
	if i >= len(values) {
		slog.Warn("Average odds value missing", "field", field, "url", url)
		return nil
	}
	v, err := odds.NormalizeString(values[i])
	if err != nil {
		slog.Warn("Invalid odds value", "field", field, "value", values[i], "url", url, "error", err)
		return nil
	}
	return &v
}

func (a *Assembler) extractTeams(game *models.Game, row *goquery.Selection) {
	names := row.Find(participantSel)
	if names.Length() == 0 {
		return
	}
	game.TeamHome = strings.TrimSpace(names.First().Text())
	game.TeamAway = strings.TrimSpace(names.Last().Text())
}

func (a *Assembler) extractScore(game *models.Game, row *goquery.Selection, pageURL string) {
	text := strings.TrimSpace(row.Find(scoreSelector).First().Text())
	if text == "" {
		return
	}
	parts := strings.Split(text, scoreSeparator)
	if len(parts) != 2 {
		slog.Warn("Malformed score text", "score", text, "url", pageURL)
		return
	}
	home, errHome := strconv.Atoi(strings.TrimSpace(parts[0]))
	away, errAway := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errHome != nil || errAway != nil || home < 0 || away < 0 {
		slog.Warn("Malformed score text", "score", text, "url", pageURL)
		return
	}
	game.ScoreHome = &home
	game.ScoreAway = &away
}

// extractFinalOdds takes the second odds snapshot rendered directly on the
// results row.
func (a *Assembler) extractFinalOdds(game *models.Game, row *goquery.Selection, possibleOutcomes int) {
	row.Find(rowOddsSelector).Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		v, err := odds.NormalizeString(text)
		if err != nil {
			slog.Warn("Invalid final odds value", "value", text, "error", err)
			return
		}
		switch i {
		case 0:
			game.FinalOddsHome = &v
		case 1:
			game.FinalOddsAway = &v
		case 2:
			if possibleOutcomes == 3 {
				game.FinalOddsDraw = &v
			}
		}
	})
}

// extractPublicPercent loads the public betting view and polls until a
// percentage indicator renders a non-zero value. Failure leaves PubPercent
// unset.
func (a *Assembler) extractPublicPercent(ctx context.Context, game *models.Game) {
	url := game.GameURL + publicView
	if !a.nav.Load(ctx, url) {
		slog.Warn("Failed to load public betting view", "url", url)
		return
	}

	var percent float64
	found := false
	err := waitFor(ctx, a.percentTimeout, pollInterval, func() (bool, error) {
		texts, err := a.session.Texts(ctx, percentSelector)
		if err != nil {
			return false, err
		}
		for _, t := range texts {
			t = strings.TrimSpace(t)
			if t == "" || t == "0%" || !strings.HasSuffix(t, "%") {
				continue
			}
			v, perr := strconv.ParseFloat(strings.TrimSuffix(t, "%"), 64)
			if perr != nil {
				continue
			}
			percent = v
			found = true
			return true, nil
		}
		return false, nil
	})
	if err != nil || !found {
		slog.Warn("Failed to get public percentage", "url", url, "error", err)
		return
	}
	if percent < 0 || percent > 100 {
		slog.Warn("Public percentage out of range", "url", url, "value", percent)
		return
	}
	game.PubPercent = &percent
}

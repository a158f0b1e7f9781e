// Package export defines the record sink the pipeline hands populated
// seasons to, and a JSON file implementation of it.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"oddsharvest/internal/pkg/models"
)

// Collector receives each season once it has been fully populated. The
// pipeline itself has no other externally observable output.
type Collector interface {
	Collect(season *models.Season) error
}

// Export is the document written to disk.
type Export struct {
	Timestamp  string         `json:"timestamp"`
	TotalGames int            `json:"total_games"`
	Seasons    []SeasonExport `json:"seasons"`
}

type SeasonExport struct {
	Name             string       `json:"name"`
	PossibleOutcomes int          `json:"possible_outcomes"`
	Pages            int          `json:"pages"`
	Games            []GameExport `json:"games"`
}

type GameExport struct {
	TeamHome string `json:"team_home"`
	TeamAway string `json:"team_away"`

	ScoreHome *int   `json:"score_home,omitempty"`
	ScoreAway *int   `json:"score_away,omitempty"`
	Outcome   string `json:"outcome"`

	OddsHome *int `json:"odds_home,omitempty"`
	OddsAway *int `json:"odds_away,omitempty"`
	OddsDraw *int `json:"odds_draw,omitempty"`

	FinalOddsHome *int `json:"final_odds_home,omitempty"`
	FinalOddsAway *int `json:"final_odds_away,omitempty"`
	FinalOddsDraw *int `json:"final_odds_draw,omitempty"`

	PubPercent *float64 `json:"pub_percent,omitempty"`

	GameURL           string    `json:"game_url,omitempty"`
	RetrievalURL      string    `json:"retrieval_url"`
	RetrievalDatetime time.Time `json:"retrieval_datetime"`
}

// JSONExporter accumulates collected seasons and writes a single export
// document on Flush.
type JSONExporter struct {
	path    string
	seasons []SeasonExport
	total   int
}

func NewJSONExporter(path string) *JSONExporter {
	return &JSONExporter{path: path}
}

func (e *JSONExporter) Collect(season *models.Season) error {
	if season == nil {
		return fmt.Errorf("season cannot be nil")
	}
	games := make([]GameExport, 0, len(season.Games))
	for _, g := range season.Games {
		games = append(games, convertGame(g))
	}
	e.seasons = append(e.seasons, SeasonExport{
		Name:             season.Name,
		PossibleOutcomes: season.PossibleOutcomes,
		Pages:            len(season.URLs),
		Games:            games,
	})
	e.total += len(games)
	return nil
}

// Flush writes the export document to the configured path.
func (e *JSONExporter) Flush() error {
	doc := Export{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		TotalGames: e.total,
		Seasons:    e.seasons,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func convertGame(g *models.Game) GameExport {
	return GameExport{
		TeamHome:          g.TeamHome,
		TeamAway:          g.TeamAway,
		ScoreHome:         g.ScoreHome,
		ScoreAway:         g.ScoreAway,
		Outcome:           string(g.Outcome),
		OddsHome:          g.OddsHome,
		OddsAway:          g.OddsAway,
		OddsDraw:          g.OddsDraw,
		FinalOddsHome:     g.FinalOddsHome,
		FinalOddsAway:     g.FinalOddsAway,
		FinalOddsDraw:     g.FinalOddsDraw,
		PubPercent:        g.PubPercent,
		GameURL:           g.GameURL,
		RetrievalURL:      g.RetrievalURL,
		RetrievalDatetime: g.RetrievalDatetime,
	}
}

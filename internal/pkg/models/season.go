package models

import "fmt"

// Season is one season of a league: the label shown on the season link, the
// ordered list of results-page URLs (a single URL until pagination is
// resolved) and the games collected from those pages, in page/row order.
type Season struct {
	Name string

	// PossibleOutcomes is 2 for win/lose sports and 3 where a draw is a
	// valid result. Fixed at construction.
	PossibleOutcomes int

	URLs  []string
	Games []*Game
}

// NewSeason creates a season with its results root as the sole URL.
func NewSeason(name, resultsURL string, possibleOutcomes int) (*Season, error) {
	if name == "" {
		return nil, fmt.Errorf("season name cannot be empty")
	}
	if resultsURL == "" {
		return nil, fmt.Errorf("season results URL cannot be empty")
	}
	if possibleOutcomes != 2 && possibleOutcomes != 3 {
		return nil, fmt.Errorf("possible outcomes must be 2 or 3, got %d", possibleOutcomes)
	}
	return &Season{
		Name:             name,
		PossibleOutcomes: possibleOutcomes,
		URLs:             []string{resultsURL},
	}, nil
}

// AddGame appends a game. Games are never reordered or deduplicated.
func (s *Season) AddGame(g *Game) {
	s.Games = append(s.Games, g)
}

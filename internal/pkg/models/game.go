package models

import "time"

// Outcome is the result of a finished game, derived from the final score.
type Outcome string

const (
	OutcomeHome    Outcome = "HOME"
	OutcomeAway    Outcome = "AWAY"
	OutcomeDraw    Outcome = "DRAW"
	OutcomeUnknown Outcome = "UNKNOWN"
)

// Game is one finished event extracted from a results page. Fields are
// populated opportunistically: any single extraction step may fail and leave
// its field unset without invalidating the rest of the record. Nullable
// fields are pointers; nil means "not extracted".
type Game struct {
	TeamHome string
	TeamAway string

	ScoreHome *int
	ScoreAway *int
	Outcome   Outcome

	// American moneyline odds from the average-odds detail view. Draw is
	// populated only for three-outcome markets.
	OddsHome *int
	OddsAway *int
	OddsDraw *int

	// Second odds snapshot taken directly from the results row.
	FinalOddsHome *int
	FinalOddsAway *int
	FinalOddsDraw *int

	// Share of public bets on the event, 0..100.
	PubPercent *float64

	GameURL           string
	RetrievalURL      string
	RetrievalDatetime time.Time
}

// Complete reports whether the game carries the minimum field set required
// for it to be emitted: both team names and both main moneyline odds.
func (g *Game) Complete() bool {
	return g.TeamHome != "" && g.TeamAway != "" &&
		g.OddsHome != nil && g.OddsAway != nil
}

// DeriveOutcome maps a final score to the game outcome. Either score being
// absent yields OutcomeUnknown.
func DeriveOutcome(scoreHome, scoreAway *int) Outcome {
	if scoreHome == nil || scoreAway == nil {
		return OutcomeUnknown
	}
	switch {
	case *scoreHome > *scoreAway:
		return OutcomeHome
	case *scoreHome < *scoreAway:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

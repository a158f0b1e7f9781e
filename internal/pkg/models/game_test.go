package models

import "testing"

func intp(v int) *int { return &v }

func TestDeriveOutcome(t *testing.T) {
	tests := []struct {
		name      string
		scoreHome *int
		scoreAway *int
		want      Outcome
	}{
		{"home win", intp(3), intp(1), OutcomeHome},
		{"away win", intp(0), intp(2), OutcomeAway},
		{"draw", intp(1), intp(1), OutcomeDraw},
		{"goalless draw", intp(0), intp(0), OutcomeDraw},
		{"missing home score", nil, intp(2), OutcomeUnknown},
		{"missing away score", intp(2), nil, OutcomeUnknown},
		{"missing both", nil, nil, OutcomeUnknown},
	}
	for _, tt := range tests {
		if got := DeriveOutcome(tt.scoreHome, tt.scoreAway); got != tt.want {
			t.Errorf("%s: DeriveOutcome = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestGameComplete(t *testing.T) {
	full := func() *Game {
		return &Game{
			TeamHome: "Chiefs",
			TeamAway: "Bills",
			OddsHome: intp(-110),
			OddsAway: intp(-110),
		}
	}

	if !full().Complete() {
		t.Error("game with teams and odds should be complete")
	}

	tests := []struct {
		name   string
		mutate func(*Game)
	}{
		{"no home team", func(g *Game) { g.TeamHome = "" }},
		{"no away team", func(g *Game) { g.TeamAway = "" }},
		{"no home odds", func(g *Game) { g.OddsHome = nil }},
		{"no away odds", func(g *Game) { g.OddsAway = nil }},
	}
	for _, tt := range tests {
		g := full()
		tt.mutate(g)
		if g.Complete() {
			t.Errorf("%s: game should not be complete", tt.name)
		}
	}

	// Scores, draw odds and public percent are optional.
	g := full()
	if g.ScoreHome != nil || g.OddsDraw != nil || g.PubPercent != nil {
		t.Fatal("fixture should not carry optional fields")
	}
	if !g.Complete() {
		t.Error("optional fields must not affect completeness")
	}
}

func TestNewSeason(t *testing.T) {
	s, err := NewSeason("2023/2024", "https://example.com/nfl/results/", 2)
	if err != nil {
		t.Fatalf("NewSeason: %v", err)
	}
	if len(s.URLs) != 1 || s.URLs[0] != "https://example.com/nfl/results/" {
		t.Errorf("season should start with exactly the results root, got %v", s.URLs)
	}
	if s.PossibleOutcomes != 2 {
		t.Errorf("possible outcomes = %d, want 2", s.PossibleOutcomes)
	}

	if _, err := NewSeason("", "https://example.com/results/", 2); err == nil {
		t.Error("empty name should be rejected")
	}
	if _, err := NewSeason("2023/2024", "", 2); err == nil {
		t.Error("empty URL should be rejected")
	}
	for _, n := range []int{0, 1, 4, -1} {
		if _, err := NewSeason("2023/2024", "https://example.com/results/", n); err == nil {
			t.Errorf("possible outcomes %d should be rejected", n)
		}
	}
}

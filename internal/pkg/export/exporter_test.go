package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oddsharvest/internal/pkg/models"
)

func intp(v int) *int { return &v }

func TestJSONExporter(t *testing.T) {
	season, err := models.NewSeason("2023/2024", "https://example.com/nfl/results/", 2)
	require.NoError(t, err)
	season.URLs = append(season.URLs, "https://example.com/nfl/results/#/page/2/")

	pct := 64.5
	season.AddGame(&models.Game{
		TeamHome:          "Kansas City Chiefs",
		TeamAway:          "Buffalo Bills",
		ScoreHome:         intp(27),
		ScoreAway:         intp(24),
		Outcome:           models.OutcomeHome,
		OddsHome:          intp(-110),
		OddsAway:          intp(-110),
		PubPercent:        &pct,
		GameURL:           "https://example.com/nfl/chiefs-bills/",
		RetrievalURL:      "https://example.com/nfl/results/",
		RetrievalDatetime: time.Now(),
	})

	path := filepath.Join(t.TempDir(), "out", "games.json")
	exporter := NewJSONExporter(path)
	require.NoError(t, exporter.Collect(season))
	require.NoError(t, exporter.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Export
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, 1, doc.TotalGames)
	require.Len(t, doc.Seasons, 1)

	s := doc.Seasons[0]
	require.Equal(t, "2023/2024", s.Name)
	require.Equal(t, 2, s.Pages)
	require.Len(t, s.Games, 1)

	g := s.Games[0]
	require.Equal(t, "Kansas City Chiefs", g.TeamHome)
	require.Equal(t, "HOME", g.Outcome)
	require.Equal(t, -110, *g.OddsHome)
	require.Equal(t, 64.5, *g.PubPercent)
	require.Nil(t, g.OddsDraw, "unset fields are omitted")
}

func TestJSONExporterNilSeason(t *testing.T) {
	exporter := NewJSONExporter(filepath.Join(t.TempDir(), "games.json"))
	require.Error(t, exporter.Collect(nil))
}

func TestJSONExporterEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	exporter := NewJSONExporter(path)
	require.NoError(t, exporter.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Export
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Zero(t, doc.TotalGames)
	require.Empty(t, doc.Seasons)
}

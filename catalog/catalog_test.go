package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfest/sportsday-live/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	games := c.Games()
	require.Len(t, games, 7)
	assert.Equal(t, "futsal", games[0].ID)

	futsal, ok := c.Get("futsal")
	require.True(t, ok)
	assert.True(t, futsal.HasGroupStage)
	assert.Equal(t, models.KindTeam, futsal.Type)

	_, ok = c.Get("cricket")
	assert.False(t, ok)

	assert.Equal(t, models.KindIndividual, c.Kind("chess"))
	assert.Equal(t, models.KindMixedDoubles, c.Kind("badminton"))
	assert.Equal(t, models.KindTeam, c.Kind("unknown"))
}

func TestSeedsCoverEveryGame(t *testing.T) {
	c := Default()

	schedules := c.SeedSchedules()
	results := c.SeedResults()
	for _, g := range c.Games() {
		_, ok := schedules[g.ID]
		assert.True(t, ok, "no schedule seed slot for %s", g.ID)
		res, ok := results[g.ID]
		require.True(t, ok, "no result seed for %s", g.ID)
		assert.Empty(t, res)
	}

	// Seed-расписание соответствует арности игры.
	for gameID, entries := range schedules {
		for _, e := range entries {
			assert.Equal(t, c.Kind(gameID), e.Participants.Kind,
				"game %s entry %d", gameID, e.ID)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "games.json")
	content := `[
		{"id": "volleyball", "name": "Volleyball", "type": "team", "max_participants": 6, "has_group_stage": true},
		{"id": "tabletennis", "name": "Table Tennis", "type": "individual", "max_participants": 16, "has_group_stage": false}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	games := c.Games()
	require.Len(t, games, 2)
	assert.Equal(t, "volleyball", games[0].ID)
	assert.Equal(t, models.KindIndividual, c.Kind("tabletennis"))
}

func TestLoadFileRejectsBadCatalogs(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty list", `[]`},
		{"missing id", `[{"name": "X", "type": "team"}]`},
		{"unknown type", `[{"id": "x", "name": "X", "type": "squad"}]`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

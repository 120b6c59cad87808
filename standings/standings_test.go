package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfest/sportsday-live/models"
)

func groupResult(group, side1, side2, score1, score2 string, winner models.Winner) models.ResultEntry {
	return models.ResultEntry{
		Round:        group,
		Participants: models.Participants{Kind: models.KindTeam, Side1: side1, Side2: side2},
		Score1:       score1,
		Score2:       score2,
		Winner:       winner,
	}
}

func TestComputePointsAndCounters(t *testing.T) {
	results := []models.ResultEntry{
		groupResult("Group A", "Lions", "Tigers", "2", "1", models.WinnerOne),
		groupResult("Group A", "Lions", "Bears", "1", "1", models.WinnerDraw),
		groupResult("Group A", "Tigers", "Bears", "0", "3", models.WinnerTwo),
	}

	table := Compute(results, "Group A")
	require.Len(t, table, 3)

	byName := make(map[string]TableRow, len(table))
	for _, row := range table {
		byName[row.Name] = row
	}

	lions := byName["Lions"]
	assert.Equal(t, 2, lions.Played)
	assert.Equal(t, 1, lions.Won)
	assert.Equal(t, 1, lions.Drawn)
	assert.Equal(t, 0, lions.Lost)
	assert.Equal(t, 3, lions.GoalsFor)
	assert.Equal(t, 2, lions.GoalsAgainst)
	assert.Equal(t, 1, lions.GoalDifference)
	assert.Equal(t, 4, lions.Points)

	bears := byName["Bears"]
	assert.Equal(t, 4, bears.Points)
	assert.Equal(t, 3, bears.GoalDifference)

	tigers := byName["Tigers"]
	assert.Equal(t, 0, tigers.Points)
	assert.Equal(t, 2, tigers.Played)
	assert.Equal(t, 2, tigers.Lost)

	// Bears и Lions равны по очкам, Bears выше по разнице мячей.
	assert.Equal(t, "Bears", table[0].Name)
	assert.Equal(t, "Lions", table[1].Name)
	assert.Equal(t, "Tigers", table[2].Name)
}

func TestComputeSortOrder(t *testing.T) {
	tests := []struct {
		name    string
		results []models.ResultEntry
		want    []string
	}{
		{
			name: "points first",
			results: []models.ResultEntry{
				groupResult("Group B", "A", "B", "0", "1", models.WinnerTwo),
				groupResult("Group B", "C", "D", "2", "2", models.WinnerDraw),
			},
			want: []string{"B", "C", "D", "A"},
		},
		{
			name: "goal difference breaks point ties",
			results: []models.ResultEntry{
				groupResult("Group B", "A", "B", "1", "0", models.WinnerOne),
				groupResult("Group B", "C", "D", "4", "0", models.WinnerOne),
			},
			want: []string{"C", "A", "B", "D"},
		},
		{
			name: "goals for breaks difference ties",
			results: []models.ResultEntry{
				groupResult("Group B", "A", "B", "1", "1", models.WinnerDraw),
				groupResult("Group B", "C", "D", "3", "3", models.WinnerDraw),
			},
			want: []string{"C", "D", "A", "B"},
		},
		{
			name: "full ties keep first-encountered order",
			results: []models.ResultEntry{
				groupResult("Group B", "Zebra", "Yak", "1", "1", models.WinnerDraw),
				groupResult("Group B", "Wolf", "Viper", "1", "1", models.WinnerDraw),
			},
			want: []string{"Zebra", "Yak", "Wolf", "Viper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Compute(tt.results, "Group B")
			require.Len(t, table, len(tt.want))
			for i, name := range tt.want {
				assert.Equal(t, name, table[i].Name, "position %d", i)
			}
		})
	}
}

func TestComputeIgnoresOtherRounds(t *testing.T) {
	results := []models.ResultEntry{
		groupResult("Group A", "Lions", "Tigers", "2", "0", models.WinnerOne),
		groupResult("Group B", "Bears", "Wolves", "1", "0", models.WinnerOne),
		groupResult("Final", "Lions", "Bears", "3", "1", models.WinnerOne),
	}

	table := Compute(results, "Group A")
	require.Len(t, table, 2)
	assert.Equal(t, "Lions", table[0].Name)
	assert.Equal(t, "Tigers", table[1].Name)
}

func TestComputeUndecidedCountsPlayedOnly(t *testing.T) {
	results := []models.ResultEntry{
		groupResult("Group A", "Lions", "Tigers", "2", "2", models.WinnerUndecided),
	}

	table := Compute(results, "Group A")
	require.Len(t, table, 2)
	for _, row := range table {
		assert.Equal(t, 1, row.Played)
		assert.Equal(t, 0, row.Won)
		assert.Equal(t, 0, row.Drawn)
		assert.Equal(t, 0, row.Lost)
		assert.Equal(t, 0, row.Points)
	}
}

func TestComputeUnparseableScoresCountAsZero(t *testing.T) {
	results := []models.ResultEntry{
		groupResult("Group A", "Lions", "Tigers", "w/o", "", models.WinnerOne),
	}

	table := Compute(results, "Group A")
	require.Len(t, table, 2)
	assert.Equal(t, 0, table[0].GoalsFor)
	assert.Equal(t, 0, table[0].GoalsAgainst)
	assert.Equal(t, 3, table[0].Points)
}

func TestComputeEmptyGroup(t *testing.T) {
	table := Compute(nil, "Group A")
	assert.Empty(t, table)
}

func TestGroups(t *testing.T) {
	schedules := []models.ScheduleEntry{
		{ID: 1, Round: "Group B"},
		{ID: 2, Round: "Group A"},
		{ID: 3, Round: "Group B"},
		{ID: 4, Round: "Quarter Final 1"},
		{ID: 5, Round: "Final"},
	}

	assert.Equal(t, []string{"Group A", "Group B"}, Groups(schedules))
	assert.Empty(t, Groups(nil))
}

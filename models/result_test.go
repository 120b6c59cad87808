package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinnerUnmarshalLegacyForms(t *testing.T) {
	tests := []struct {
		raw  string
		want Winner
	}{
		{`null`, WinnerUndecided},
		{`""`, WinnerUndecided},
		{`0`, WinnerUndecided},
		{`1`, WinnerOne},
		{`"1"`, WinnerOne},
		{`"one"`, WinnerOne},
		{`2`, WinnerTwo},
		{`"2"`, WinnerTwo},
		{`"two"`, WinnerTwo},
		{`"draw"`, WinnerDraw},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var w Winner
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &w))
			assert.Equal(t, tt.want, w)
		})
	}

	var w Winner
	assert.Error(t, json.Unmarshal([]byte(`"three"`), &w))
}

func TestResultEntryLegacyIsDraw(t *testing.T) {
	var res ResultEntry
	raw := `{"id":5,"round":"Group A","team1":"Lions","team2":"Tigers","score1":"1","score2":"1","isDraw":true}`
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	assert.Equal(t, WinnerDraw, res.Winner)

	// Явный winner имеет приоритет над isDraw.
	var res2 ResultEntry
	raw2 := `{"id":6,"round":"Group A","team1":"Lions","team2":"Tigers","winner":1,"isDraw":true}`
	require.NoError(t, json.Unmarshal([]byte(raw2), &res2))
	assert.Equal(t, WinnerOne, res2.Winner)
}

func TestResultEntryScheduleIDOptional(t *testing.T) {
	var linked ResultEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"scheduleId":42,"round":"Final","team1":"A","team2":"B"}`), &linked))
	assert.Equal(t, int64(42), linked.ScheduleID)

	var manual ResultEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"round":"Final","team1":"A","team2":"B"}`), &manual))
	assert.Equal(t, int64(0), manual.ScheduleID)

	// Результат без обратной ссылки не пишет scheduleId на провод.
	data, err := json.Marshal(manual)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "scheduleId")
}

func TestParticipantsWireFieldsByKind(t *testing.T) {
	tests := []struct {
		name string
		kind ParticipantKind
		raw  string
	}{
		{"team", KindTeam, `{"id":1,"round":"Final","team1":"Lions","team2":"Tigers"}`},
		{"individual", KindIndividual, `{"id":1,"round":"Final","player1":"Lions","player2":"Tigers"}`},
		{"mixed doubles", KindMixedDoubles, `{"id":1,"round":"Final","pair1":"Lions","pair2":"Tigers"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res ResultEntry
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &res))
			assert.Equal(t, tt.kind, res.Participants.Kind)
			assert.Equal(t, "Lions", res.Participants.Side1)
			assert.Equal(t, "Tigers", res.Participants.Side2)

			data, err := json.Marshal(res)
			require.NoError(t, err)
			var round ResultEntry
			require.NoError(t, json.Unmarshal(data, &round))
			assert.Equal(t, res.Participants, round.Participants)
		})
	}
}

func TestParticipantsSlot(t *testing.T) {
	p := Participants{Kind: KindTeam, Side1: "Lions", Side2: "Tigers"}
	assert.Equal(t, "Lions", p.Slot(WinnerOne))
	assert.Equal(t, "Tigers", p.Slot(WinnerTwo))
	assert.Equal(t, "", p.Slot(WinnerDraw))
	assert.Equal(t, "", p.Slot(WinnerUndecided))
}

func TestScheduleEntryRoundTrip(t *testing.T) {
	entry := ScheduleEntry{
		ID:           7,
		Time:         "09:30",
		Venue:        "Court 2",
		Round:        "Group B",
		Participants: Participants{Kind: KindMixedDoubles, Side1: "Ann & Bob", Side2: "Cat & Dan"},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pair1":"Ann & Bob"`)

	var decoded ScheduleEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry, decoded)
}

func TestRoundClassification(t *testing.T) {
	assert.True(t, IsGroupRound("Group A"))
	assert.False(t, IsGroupRound("Final"))

	for _, round := range KnockoutRounds {
		assert.True(t, IsKnockoutRound(round), round)
	}
	assert.False(t, IsKnockoutRound("Group A"))
	assert.False(t, IsKnockoutRound("Semifinal 3"))
}

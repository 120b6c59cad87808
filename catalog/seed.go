package catalog

import "github.com/sportsfest/sportsday-live/models"

// SeedSchedules — расписание первого дня, которым засевается пустое
// удалённое хранилище при первой подписке.
func (c *Catalog) SeedSchedules() map[string][]models.ScheduleEntry {
	seeds := map[string][]models.ScheduleEntry{
		"futsal": {
			{ID: 1, Time: "9:00 AM", Venue: "Court 1", Round: "Quarter Final 1", Participants: teams("Team A", "Team B")},
			{ID: 2, Time: "10:30 AM", Venue: "Court 1", Round: "Quarter Final 2", Participants: teams("Team C", "Team D")},
			{ID: 3, Time: "12:00 PM", Venue: "Court 1", Round: "Quarter Final 3", Participants: teams("Team E", "Team F")},
			{ID: 4, Time: "1:30 PM", Venue: "Court 1", Round: "Quarter Final 4", Participants: teams("Team G", "Team H")},
		},
		"netball": {
			{ID: 1, Time: "9:00 AM", Venue: "Court 2", Round: "Quarter Final 1", Participants: teams("Team A", "Team B")},
			{ID: 2, Time: "10:30 AM", Venue: "Court 2", Round: "Quarter Final 2", Participants: teams("Team C", "Team D")},
		},
		"carrom": {
			{ID: 1, Time: "9:00 AM", Venue: "Hall A", Round: "Round of 16", Participants: players("Player 1", "Player 2")},
			{ID: 2, Time: "9:30 AM", Venue: "Hall A", Round: "Round of 16", Participants: players("Player 3", "Player 4")},
		},
		"chess": {
			{ID: 1, Time: "9:00 AM", Venue: "Hall B", Round: "Round of 16", Participants: players("Player 1", "Player 2")},
			{ID: 2, Time: "10:00 AM", Venue: "Hall B", Round: "Round of 16", Participants: players("Player 3", "Player 4")},
		},
		"badminton": {
			{ID: 1, Time: "9:00 AM", Venue: "Court 3", Round: "Quarter Final 1", Participants: pairs("Pair A", "Pair B")},
			{ID: 2, Time: "10:00 AM", Venue: "Court 3", Round: "Quarter Final 2", Participants: pairs("Pair C", "Pair D")},
		},
		"esports": {
			{ID: 1, Time: "9:00 AM", Venue: "Gaming Zone", Round: "Group Stage", Participants: teams("Team A", "Team B")},
			{ID: 2, Time: "9:30 AM", Venue: "Gaming Zone", Round: "Group Stage", Participants: teams("Team C", "Team D")},
		},
		"darts": {
			{ID: 1, Time: "9:00 AM", Venue: "Hall C", Round: "Round of 16", Participants: players("Player 1", "Player 2")},
			{ID: 2, Time: "9:30 AM", Venue: "Hall C", Round: "Round of 16", Participants: players("Player 3", "Player 4")},
		},
	}
	out := make(map[string][]models.ScheduleEntry, len(c.games))
	for _, g := range c.games {
		out[g.ID] = seeds[g.ID] // nil for games without a default schedule
	}
	return out
}

// SeedResults — пустой список результатов на каждую игру каталога.
func (c *Catalog) SeedResults() map[string][]models.ResultEntry {
	out := make(map[string][]models.ResultEntry, len(c.games))
	for _, g := range c.games {
		out[g.ID] = []models.ResultEntry{}
	}
	return out
}

func teams(a, b string) models.Participants {
	return models.Participants{Kind: models.KindTeam, Side1: a, Side2: b}
}

func players(a, b string) models.Participants {
	return models.Participants{Kind: models.KindIndividual, Side1: a, Side2: b}
}

func pairs(a, b string) models.Participants {
	return models.Participants{Kind: models.KindMixedDoubles, Side1: a, Side2: b}
}

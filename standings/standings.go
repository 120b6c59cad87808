// Package standings реализует чистый расчёт турнирных таблиц группового
// этапа по списку результатов.
package standings

import (
	"sort"
	"strconv"

	"github.com/sportsfest/sportsday-live/models"
)

// TableRow — строка турнирной таблицы одной команды.
type TableRow struct {
	Name           string `json:"name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// Compute строит таблицу группы groupName по результатам: победа 3 очка,
// ничья 1, поражение 0. Результат с неопределённым исходом учитывается как
// сыгранный матч без изменения счётчиков побед и очков. Сортировка по
// убыванию: очки, разница мячей, забитые; дальше порядок стабилен — команды
// остаются в порядке первого появления при обходе результатов.
func Compute(results []models.ResultEntry, groupName string) []TableRow {
	rows := make([]*TableRow, 0, 8)
	index := make(map[string]*TableRow)

	row := func(name string) *TableRow {
		if r, ok := index[name]; ok {
			return r
		}
		r := &TableRow{Name: name}
		index[name] = r
		rows = append(rows, r)
		return r
	}

	for _, res := range results {
		if res.Round != groupName {
			continue
		}
		r1 := row(res.Participants.Side1)
		r2 := row(res.Participants.Side2)

		goals1 := parseScore(res.Score1)
		goals2 := parseScore(res.Score2)

		r1.Played++
		r2.Played++
		r1.GoalsFor += goals1
		r1.GoalsAgainst += goals2
		r2.GoalsFor += goals2
		r2.GoalsAgainst += goals1

		switch res.Winner {
		case models.WinnerDraw:
			r1.Drawn++
			r2.Drawn++
			r1.Points++
			r2.Points++
		case models.WinnerOne:
			r1.Won++
			r2.Lost++
			r1.Points += 3
		case models.WinnerTwo:
			r2.Won++
			r1.Lost++
			r2.Points += 3
		}
		// WinnerUndecided: матч сыгран, но исход не зафиксирован.

		r1.GoalDifference = r1.GoalsFor - r1.GoalsAgainst
		r2.GoalDifference = r2.GoalsFor - r2.GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})

	out := make([]TableRow, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	return out
}

// Groups возвращает отсортированный список групп, встречающихся в
// расписании. Группа с расписанием, но без результатов, тоже попадает в
// список — её таблица будет пустой.
func Groups(schedules []models.ScheduleEntry) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, s := range schedules {
		if models.IsGroupRound(s.Round) && !seen[s.Round] {
			seen[s.Round] = true
			groups = append(groups, s.Round)
		}
	}
	sort.Strings(groups)
	return groups
}

func parseScore(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

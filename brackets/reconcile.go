// Package brackets реализует чистую сверку сетки плей-офф: слияние записей
// расписания и результатов одной игры в каноническое представление восьми
// зарезервированных раундов, а также синтез сетки-заглушки для игр без
// сохранённой вручную сетки.
package brackets

import "github.com/sportsfest/sportsday-live/models"

// MatchView — один матч сетки, собранный из записи расписания и (если есть)
// прикреплённого результата, либо синтезированный напрямую из результата,
// чья запись расписания уже отозвана.
type MatchView struct {
	Round        string              `json:"round"`
	ScheduleID   int64               `json:"scheduleId,omitempty"`
	Time         string              `json:"time,omitempty"`
	Venue        string              `json:"venue,omitempty"`
	Participant1 string              `json:"participant1"`
	Participant2 string              `json:"participant2"`
	Result       *models.ResultEntry `json:"result"`
}

// View — сверенная сетка плей-офф одной игры. Rounds содержит все восемь
// зарезервированных раундов; пустой раунд отображается заглушкой.
type View struct {
	Rounds   map[string][]MatchView `json:"rounds"`
	HasData  bool                   `json:"hasData"`
	Champion *string                `json:"champion"`
}

// Reconcile сливает расписание и результаты игры в сетку плей-офф.
//
// Каждая запись расписания с зарезервированным именем раунда даёт MatchView
// с прикреплённым по scheduleId результатом (или без него). Результат,
// чья запись расписания отсутствует — отозвана каскадом или не существовала —
// синтезирует MatchView из собственных полей, но только если этот id
// результата ещё не представлен в раунде: результат появляется ровно один раз.
func Reconcile(schedules []models.ScheduleEntry, results []models.ResultEntry) View {
	rounds := make(map[string][]MatchView, len(models.KnockoutRounds))
	for _, name := range models.KnockoutRounds {
		rounds[name] = []MatchView{}
	}

	for _, s := range schedules {
		if !models.IsKnockoutRound(s.Round) {
			continue
		}
		view := MatchView{
			Round:        s.Round,
			ScheduleID:   s.ID,
			Time:         s.Time,
			Venue:        s.Venue,
			Participant1: s.Participants.Side1,
			Participant2: s.Participants.Side2,
		}
		for i := range results {
			if results[i].ScheduleID == s.ID {
				res := results[i]
				view.Result = &res
				break
			}
		}
		rounds[s.Round] = append(rounds[s.Round], view)
	}

	for i := range results {
		res := results[i]
		if !models.IsKnockoutRound(res.Round) {
			continue
		}
		if hasResultID(rounds[res.Round], res.ID) {
			continue
		}
		rounds[res.Round] = append(rounds[res.Round], MatchView{
			Round:        res.Round,
			Participant1: res.Participants.Side1,
			Participant2: res.Participants.Side2,
			Result:       &res,
		})
	}

	view := View{Rounds: rounds}
	for _, name := range models.KnockoutRounds {
		if len(rounds[name]) > 0 {
			view.HasData = true
			break
		}
	}
	if finals := rounds[models.RoundFinal]; len(finals) > 0 {
		if champion := WinnerName(finals[0]); champion != "" {
			view.Champion = &champion
		}
	}
	return view
}

func hasResultID(views []MatchView, id int64) bool {
	for _, v := range views {
		if v.Result != nil && v.Result.ID == id {
			return true
		}
	}
	return false
}

// WinnerName возвращает имя победителя матча, либо пустую строку при ничьей,
// незафиксированном исходе или отсутствии результата.
func WinnerName(v MatchView) string {
	if v.Result == nil {
		return ""
	}
	switch v.Result.Winner {
	case models.WinnerOne, models.WinnerTwo:
	default:
		return ""
	}
	if name := v.Result.Participants.Slot(v.Result.Winner); name != "" {
		return name
	}
	// Результат без собственных полей участников — берём их из расписания.
	if v.Result.Winner == models.WinnerOne {
		return v.Participant1
	}
	return v.Participant2
}

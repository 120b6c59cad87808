package brackets

import (
	"fmt"

	"github.com/sportsfest/sportsday-live/models"
)

// Placeholder синтезирует пустую сетку на восемь участников: четвертьфиналы
// со слотами-заглушками, TBD-полуфиналы и финал, чемпион не определён.
// Используется, когда для игры нет сохранённой вручную сетки.
func Placeholder() models.Bracket {
	qf := make([]models.BracketMatch, 4)
	for i := range qf {
		qf[i] = models.BracketMatch{
			ID:           int64(i + 1),
			Participant1: fmt.Sprintf("Participant %d", i*2+1),
			Participant2: fmt.Sprintf("Participant %d", i*2+2),
		}
	}
	return models.Bracket{
		QuarterFinals: qf,
		SemiFinals: []models.BracketMatch{
			{ID: 5, Participant1: "TBD", Participant2: "TBD"},
			{ID: 6, Participant1: "TBD", Participant2: "TBD"},
		},
		Finals: []models.BracketMatch{
			{ID: 7, Participant1: "TBD", Participant2: "TBD"},
		},
		Champion: nil,
	}
}

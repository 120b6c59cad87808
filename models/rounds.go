package models

import "strings"

// GroupRoundPrefix — раунды с этим префиксом участвуют в расчёте турнирных
// таблиц группового этапа.
const GroupRoundPrefix = "Group "

// KnockoutRounds — восемь зарезервированных имён раундов плей-офф в порядке
// следования по сетке.
var KnockoutRounds = []string{
	"Quarter Final 1",
	"Quarter Final 2",
	"Quarter Final 3",
	"Quarter Final 4",
	"Semifinal 1",
	"Semifinal 2",
	"3rd-4th Placing",
	"Final",
}

const (
	RoundThirdPlace = "3rd-4th Placing"
	RoundFinal      = "Final"
)

func IsGroupRound(round string) bool {
	return strings.HasPrefix(round, GroupRoundPrefix)
}

func IsKnockoutRound(round string) bool {
	for _, r := range KnockoutRounds {
		if r == round {
			return true
		}
	}
	return false
}

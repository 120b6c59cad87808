package models

// BracketMatch — один слот вручную курируемой сетки.
type BracketMatch struct {
	ID           int64   `json:"id"`
	Participant1 string  `json:"participant1"`
	Participant2 string  `json:"participant2"`
	Score1       *string `json:"score1"`
	Score2       *string `json:"score2"`
	Winner       Winner  `json:"winner,omitempty"`
}

// Bracket — вручную курируемая сетка плей-офф одной игры. Записывается
// целиком через updateBracket и никак не связана с сеткой, выводимой из
// расписания и результатов: обе существуют независимо.
type Bracket struct {
	QuarterFinals []BracketMatch `json:"quarterFinals"`
	SemiFinals    []BracketMatch `json:"semiFinals"`
	Finals        []BracketMatch `json:"finals"`
	Champion      *string        `json:"champion"`
}

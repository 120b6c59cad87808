package models

// LiveFlag отмечает, что матч matchId в игре gameId идёт прямо сейчас.
// Набор флагов хранится единым документом для всех игр; на matchId
// приходится не более одного флага (семантика множества).
type LiveFlag struct {
	GameID  string `json:"gameId"`
	MatchID int64  `json:"matchId"`
}

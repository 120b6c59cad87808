package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Winner — явный четырёхвариантный тег исхода матча. Старый формат кодировал
// исход как число 1/2, строку "draw" или null; Unmarshal принимает все
// исторические формы, Marshal всегда пишет строковую.
type Winner string

const (
	WinnerUndecided Winner = ""
	WinnerOne       Winner = "one"
	WinnerTwo       Winner = "two"
	WinnerDraw      Winner = "draw"
)

func (w *Winner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", `""`, "0":
		*w = WinnerUndecided
		return nil
	case "1", `"1"`, `"one"`:
		*w = WinnerOne
		return nil
	case "2", `"2"`, `"two"`:
		*w = WinnerTwo
		return nil
	case `"draw"`:
		*w = WinnerDraw
		return nil
	}
	return fmt.Errorf("invalid winner value: %s", data)
}

// ResultEntry представляет записанный администратором результат матча.
// ScheduleID — необязательная обратная ссылка на запись расписания, из
// которой результат был получен; владения она не выражает.
type ResultEntry struct {
	ID           int64
	ScheduleID   int64 // 0, если результат введён без записи расписания
	Round        string
	Participants Participants
	Score1       string
	Score2       string
	Winner       Winner
	Timestamp    time.Time
}

type resultEntryJSON struct {
	ID         int64  `json:"id"`
	ScheduleID *int64 `json:"scheduleId,omitempty"`
	Round      string `json:"round"`
	participantFields
	Score1    *string    `json:"score1,omitempty"`
	Score2    *string    `json:"score2,omitempty"`
	Winner    Winner     `json:"winner,omitempty"`
	IsDraw    bool       `json:"isDraw,omitempty"` // legacy draw marker, accepted on read
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func (r ResultEntry) MarshalJSON() ([]byte, error) {
	out := resultEntryJSON{
		ID:                r.ID,
		Round:             r.Round,
		participantFields: r.Participants.fields(),
		Winner:            r.Winner,
	}
	if r.ScheduleID != 0 {
		out.ScheduleID = &r.ScheduleID
	}
	if r.Score1 != "" {
		out.Score1 = &r.Score1
	}
	if r.Score2 != "" {
		out.Score2 = &r.Score2
	}
	if !r.Timestamp.IsZero() {
		out.Timestamp = &r.Timestamp
	}
	return json.Marshal(out)
}

func (r *ResultEntry) UnmarshalJSON(data []byte) error {
	var in resultEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = ResultEntry{
		ID:           in.ID,
		Round:        in.Round,
		Participants: participantsFromFields(in.participantFields),
		Winner:       in.Winner,
	}
	if in.ScheduleID != nil {
		r.ScheduleID = *in.ScheduleID
	}
	if in.Score1 != nil {
		r.Score1 = *in.Score1
	}
	if in.Score2 != nil {
		r.Score2 = *in.Score2
	}
	if in.IsDraw && r.Winner == WinnerUndecided {
		r.Winner = WinnerDraw
	}
	if in.Timestamp != nil {
		r.Timestamp = *in.Timestamp
	}
	return nil
}

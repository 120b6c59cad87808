package models

import "encoding/json"

// ScheduleEntry представляет запланированный матч. Создаётся и изменяется
// администратором; удаляется явно либо неявно — каскадом при записи
// результата, ссылающегося на её id.
type ScheduleEntry struct {
	ID           int64
	Time         string
	Venue        string
	Round        string
	Participants Participants
}

type scheduleEntryJSON struct {
	ID    int64  `json:"id"`
	Time  string `json:"time,omitempty"`
	Venue string `json:"venue,omitempty"`
	Round string `json:"round"`
	participantFields
}

func (e ScheduleEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(scheduleEntryJSON{
		ID:                e.ID,
		Time:              e.Time,
		Venue:             e.Venue,
		Round:             e.Round,
		participantFields: e.Participants.fields(),
	})
}

func (e *ScheduleEntry) UnmarshalJSON(data []byte) error {
	var in scheduleEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = ScheduleEntry{
		ID:           in.ID,
		Time:         in.Time,
		Venue:        in.Venue,
		Round:        in.Round,
		Participants: participantsFromFields(in.participantFields),
	}
	return nil
}

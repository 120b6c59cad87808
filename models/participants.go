package models

// Participants — два именованных слота участников матча, помеченные арностью
// игры. На проводе поля называются по-разному (team1/team2, player1/player2,
// pair1/pair2); арность определяется один раз по каталогу игр, а при чтении
// старых данных — по тому, какая пара полей присутствует.
type Participants struct {
	Kind  ParticipantKind
	Side1 string
	Side2 string
}

// participantFields is the wire shape shared by schedule and result entries.
// Exactly one pair of fields is populated, depending on Kind.
type participantFields struct {
	Team1   string `json:"team1,omitempty"`
	Team2   string `json:"team2,omitempty"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Pair1   string `json:"pair1,omitempty"`
	Pair2   string `json:"pair2,omitempty"`
}

func (p Participants) fields() participantFields {
	switch p.Kind {
	case KindIndividual:
		return participantFields{Player1: p.Side1, Player2: p.Side2}
	case KindMixedDoubles:
		return participantFields{Pair1: p.Side1, Pair2: p.Side2}
	default:
		return participantFields{Team1: p.Side1, Team2: p.Side2}
	}
}

func participantsFromFields(f participantFields) Participants {
	switch {
	case f.Player1 != "" || f.Player2 != "":
		return Participants{Kind: KindIndividual, Side1: f.Player1, Side2: f.Player2}
	case f.Pair1 != "" || f.Pair2 != "":
		return Participants{Kind: KindMixedDoubles, Side1: f.Pair1, Side2: f.Pair2}
	case f.Team1 != "" || f.Team2 != "":
		return Participants{Kind: KindTeam, Side1: f.Team1, Side2: f.Team2}
	default:
		return Participants{}
	}
}

// Slot возвращает имя участника для исхода w, либо пустую строку,
// если исход не указывает на конкретный слот.
func (p Participants) Slot(w Winner) string {
	switch w {
	case WinnerOne:
		return p.Side1
	case WinnerTwo:
		return p.Side2
	}
	return ""
}

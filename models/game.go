package models

// ParticipantKind определяет арность участников матча: команды, одиночные
// игроки или смешанные пары. Значения совпадают с типами игр в каталоге.
type ParticipantKind string

const (
	KindTeam         ParticipantKind = "team"
	KindIndividual   ParticipantKind = "individual"
	KindMixedDoubles ParticipantKind = "mixed-doubles"
)

// Game представляет вид спорта из внешнего каталога. Записи каталога
// неизменяемы: ядро их читает, но никогда не мутирует.
type Game struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            ParticipantKind `json:"type"`
	MaxParticipants int             `json:"max_participants"`
	HasGroupStage   bool            `json:"has_group_stage"`
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sportsfest/sportsday-live/models"
)

// Catalog — внешний неизменяемый список игр турнира. Ядро читает его один
// раз при старте и никогда не мутирует.
type Catalog struct {
	games []models.Game
	byID  map[string]models.Game
}

// defaultGames — состав игр спортивного дня по умолчанию.
var defaultGames = []models.Game{
	{ID: "futsal", Name: "Futsal", Type: models.KindTeam, MaxParticipants: 8, HasGroupStage: true},
	{ID: "netball", Name: "Netball", Type: models.KindTeam, MaxParticipants: 8, HasGroupStage: true},
	{ID: "carrom", Name: "Carrom", Type: models.KindIndividual, MaxParticipants: 16, HasGroupStage: false},
	{ID: "chess", Name: "Chess", Type: models.KindIndividual, MaxParticipants: 16, HasGroupStage: false},
	{ID: "badminton", Name: "Badminton", Type: models.KindMixedDoubles, MaxParticipants: 8, HasGroupStage: false},
	{ID: "esports", Name: "E-sports (FC26)", Type: models.KindTeam, MaxParticipants: 8, HasGroupStage: true},
	{ID: "darts", Name: "Darts", Type: models.KindIndividual, MaxParticipants: 16, HasGroupStage: false},
}

// Default возвращает встроенный каталог.
func Default() *Catalog {
	return newCatalog(defaultGames)
}

// LoadFile читает каталог из JSON-файла (массив игр). Порядок записей
// сохраняется — он определяет порядок игр во всех ответах API.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game catalog: %w", err)
	}
	var games []models.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse game catalog %s: %w", path, err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game catalog %s contains no games", path)
	}
	for i, g := range games {
		if g.ID == "" {
			return nil, fmt.Errorf("game catalog %s: entry %d has no id", path, i)
		}
		switch g.Type {
		case models.KindTeam, models.KindIndividual, models.KindMixedDoubles:
		default:
			return nil, fmt.Errorf("game catalog %s: game %q has unknown type %q", path, g.ID, g.Type)
		}
	}
	return newCatalog(games), nil
}

func newCatalog(games []models.Game) *Catalog {
	byID := make(map[string]models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	return &Catalog{games: games, byID: byID}
}

// Games возвращает все игры в порядке каталога.
func (c *Catalog) Games() []models.Game {
	out := make([]models.Game, len(c.games))
	copy(out, c.games)
	return out
}

// Get возвращает игру по id.
func (c *Catalog) Get(id string) (models.Game, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// Kind возвращает арность участников игры; для неизвестной игры — команды.
func (c *Catalog) Kind(id string) models.ParticipantKind {
	if g, ok := c.byID[id]; ok {
		return g.Type
	}
	return models.KindTeam
}

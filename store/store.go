package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection — имя одной из четырёх коллекций удалённого хранилища.
type Collection string

const (
	CollectionSchedules   Collection = "schedules"
	CollectionResults     Collection = "results"
	CollectionLiveMatches Collection = "liveMatches"
	CollectionBrackets    Collection = "brackets"
)

// LiveMatchesKey — коллекция liveMatches хранится одним документом,
// общим для всех игр.
const LiveMatchesKey = "all"

var (
	ErrStoreClosed       = errors.New("event store is closed")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Snapshot — полное содержимое коллекции на момент очередного коммита.
// Подписчики получают именно снимки, а не дельты: каждая запись заменяет
// значение ключа целиком.
type Snapshot struct {
	Collection Collection
	Values     map[string]json.RawMessage
}

// EventStore — реплицируемое push-хранилище вида ключ-значение.
//
// Subscribe доставляет текущее содержимое коллекции, затем новый снимок
// после каждого зафиксированного Write, включая записи самого подписчика.
// Если коллекция на удалённой стороне пуста, а seed непустой, хранилище
// сначала записывает seed. Снимки одной коллекции приходят в порядке
// коммитов; порядок между коллекциями не гарантируется.
//
// Write заменяет значение под ключом целиком. Одновременные писатели
// перезаписывают друг друга (last-writer-wins) — окно между последним
// полученным снимком и записью остаётся гонкой, это осознанный выбор.
type EventStore interface {
	Subscribe(ctx context.Context, collection Collection, seed map[string]json.RawMessage) (<-chan Snapshot, error)
	Write(ctx context.Context, collection Collection, key string, value json.RawMessage) error
	Close() error
}

// Collections перечисляет все коллекции хранилища.
func Collections() []Collection {
	return []Collection{CollectionSchedules, CollectionResults, CollectionLiveMatches, CollectionBrackets}
}

func validCollection(c Collection) bool {
	switch c {
	case CollectionSchedules, CollectionResults, CollectionLiveMatches, CollectionBrackets:
		return true
	}
	return false
}

func copyValues(values map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		c := make(json.RawMessage, len(v))
		copy(c, v)
		out[k] = c
	}
	return out
}

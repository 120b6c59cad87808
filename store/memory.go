package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore — процессная реализация EventStore. Используется в тестах и
// для одноузлового запуска без Postgres; семантика снимков и уведомлений
// та же, что у реплицируемой реализации: писатель тоже получает свой снимок.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[Collection]map[string]json.RawMessage
	fanout *fanout
	closed bool
}

func NewMemoryStore() *MemoryStore {
	data := make(map[Collection]map[string]json.RawMessage, 4)
	for _, c := range Collections() {
		data[c] = make(map[string]json.RawMessage)
	}
	return &MemoryStore{data: data, fanout: newFanout()}
}

func (m *MemoryStore) Subscribe(ctx context.Context, collection Collection, seed map[string]json.RawMessage) (<-chan Snapshot, error) {
	if !validCollection(collection) {
		return nil, ErrUnknownCollection
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	if len(m.data[collection]) == 0 && len(seed) > 0 {
		m.data[collection] = copyValues(seed)
	}
	initial := Snapshot{Collection: collection, Values: copyValues(m.data[collection])}
	return m.fanout.add(ctx, collection, initial), nil
}

func (m *MemoryStore) Write(ctx context.Context, collection Collection, key string, value json.RawMessage) error {
	if !validCollection(collection) {
		return ErrUnknownCollection
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	c := make(json.RawMessage, len(value))
	copy(c, value)
	m.data[collection][key] = c
	// Публикация под блокировкой хранилища сохраняет порядок коммитов.
	m.fanout.publish(Snapshot{Collection: collection, Values: copyValues(m.data[collection])})
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.fanout.closeAll()
	return nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
)

const (
	notifyChannel = "sportsday_state"
	pingInterval  = 90 * time.Second
)

const createStateTable = `
	CREATE TABLE IF NOT EXISTS event_state (
		collection TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		payload    JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, key)
	)`

// PostgresStore — реплицируемая реализация EventStore поверх Postgres.
// Значения лежат в event_state по одной строке на (collection, key); каждая
// фиксация записи сопровождается pg_notify, а выделенный pq.Listener
// перечитывает коллекцию и раздаёт свежий снимок подписчикам. Уведомления
// получают все процессы, слушающие канал, включая сам процесс-писатель.
type PostgresStore struct {
	db       *sql.DB
	listener *pq.Listener
	fanout   *fanout
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewPostgresStore(db *sql.DB, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	if _, err := db.Exec(createStateTable); err != nil {
		return nil, fmt.Errorf("failed to ensure event_state table: %w", err)
	}

	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Error("store listener event", slog.Int("event", int(ev)), slog.Any("error", err))
		}
	})
	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", notifyChannel, err)
	}

	s := &PostgresStore{
		db:       db,
		listener: listener,
		fanout:   newFanout(),
		logger:   logger,
		done:     make(chan struct{}),
	}
	go s.dispatch()
	return s, nil
}

// dispatch — единственная горутина, превращающая уведомления в снимки.
// Один читатель на процесс сохраняет порядок коммитов внутри коллекции.
func (s *PostgresStore) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case n := <-s.listener.Notify:
			if n == nil {
				// Переподключение: могли пропустить уведомления,
				// перечитываем всё.
				for _, c := range Collections() {
					s.reload(c)
				}
				continue
			}
			c := Collection(n.Extra)
			if !validCollection(c) {
				s.logger.Warn("notification for unknown collection", slog.String("collection", n.Extra))
				continue
			}
			s.reload(c)
		case <-time.After(pingInterval):
			go func() {
				if err := s.listener.Ping(); err != nil {
					s.logger.Error("store listener ping failed", slog.Any("error", err))
				}
			}()
		}
	}
}

func (s *PostgresStore) reload(collection Collection) {
	values, err := s.load(context.Background(), collection)
	if err != nil {
		s.logger.Error("failed to reload collection",
			slog.String("collection", string(collection)), slog.Any("error", err))
		return
	}
	s.fanout.publish(Snapshot{Collection: collection, Values: values})
}

func (s *PostgresStore) load(ctx context.Context, collection Collection) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, payload FROM event_state WHERE collection = $1`, string(collection))
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer rows.Close()

	values := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan collection %s: %w", collection, err)
		}
		values[key] = json.RawMessage(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return values, nil
}

func (s *PostgresStore) Subscribe(ctx context.Context, collection Collection, seed map[string]json.RawMessage) (<-chan Snapshot, error) {
	if !validCollection(collection) {
		return nil, ErrUnknownCollection
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}
	s.mu.Unlock()

	values, err := s.load(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 && len(seed) > 0 {
		if err := s.writeSeed(ctx, collection, seed); err != nil {
			return nil, err
		}
		values = copyValues(seed)
	}
	return s.fanout.add(ctx, collection, Snapshot{Collection: collection, Values: values}), nil
}

func (s *PostgresStore) writeSeed(ctx context.Context, collection Collection, seed map[string]json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range seed {
		if _, err := tx.ExecContext(ctx, upsertStateQuery, string(collection), key, []byte(value)); err != nil {
			return fmt.Errorf("failed to seed %s/%s: %w", collection, key, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(collection)); err != nil {
		return fmt.Errorf("failed to notify after seeding %s: %w", collection, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed for %s: %w", collection, err)
	}
	return nil
}

const upsertStateQuery = `
	INSERT INTO event_state (collection, key, payload, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (collection, key)
	DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`

func (s *PostgresStore) Write(ctx context.Context, collection Collection, key string, value json.RawMessage) error {
	if !validCollection(collection) {
		return ErrUnknownCollection
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin write transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertStateQuery, string(collection), key, []byte(value)); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, key, err)
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(collection)); err != nil {
		return fmt.Errorf("failed to notify after writing %s/%s: %w", collection, key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	s.fanout.closeAll()
	return s.listener.Close()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sportsfest/sportsday-live/brackets"
	"github.com/sportsfest/sportsday-live/catalog"
	"github.com/sportsfest/sportsday-live/models"
	"github.com/sportsfest/sportsday-live/standings"
	"github.com/sportsfest/sportsday-live/store"
)

// Actor — субъект, от имени которого выполняется операция. Ядро не занимается
// аутентификацией: оно принимает готовую булеву способность CanEdit и
// отклоняет мутации, когда её нет.
type Actor struct {
	Name    string
	CanEdit bool
}

// LiveBanner — сводка live-матчей одной игры для зрительского баннера.
type LiveBanner struct {
	GameID  string            `json:"game_id"`
	Count   int               `json:"count"`
	Matches []models.LiveFlag `json:"matches"`
}

// EventService владеет реплицированным состоянием турнира: применяет
// мутационные каскады администратора и отдаёт производные модели чтения.
//
// Все мутации — это чтение последнего полученного снимка, сборка нового
// полного значения и запись его целиком; локальный кэш обновляется только
// по уведомлению хранилища, включая уведомление о собственной записи.
type EventService interface {
	Start(ctx context.Context) error

	AddSchedule(ctx context.Context, actor Actor, gameID string, entry models.ScheduleEntry) (models.ScheduleEntry, error)
	UpdateSchedule(ctx context.Context, actor Actor, gameID string, id int64, entry models.ScheduleEntry) error
	DeleteSchedule(ctx context.Context, actor Actor, gameID string, id int64) error
	AddResult(ctx context.Context, actor Actor, gameID string, result models.ResultEntry) (models.ResultEntry, error)
	UpdateResult(ctx context.Context, actor Actor, gameID string, id int64, result models.ResultEntry) error
	DeleteResult(ctx context.Context, actor Actor, gameID string, id int64) error
	SetLive(ctx context.Context, actor Actor, gameID string, matchID int64, isLive bool) error
	ClearAllLive(ctx context.Context, actor Actor) error
	UpdateBracket(ctx context.Context, actor Actor, gameID string, bracket models.Bracket) error

	Schedules(gameID string) []models.ScheduleEntry
	PendingSchedules(gameID string) []models.ScheduleEntry
	Results(gameID string) []models.ResultEntry
	Standings(gameID string, groupName string) []standings.TableRow
	Groups(gameID string) []string
	KnockoutView(gameID string) brackets.View
	BracketFor(gameID string) models.Bracket
	IsLive(gameID string, matchID int64) bool
	LiveForGame(gameID string) []models.LiveFlag
	AllLive() []models.LiveFlag
	LiveBannerFor(gameID string) LiveBanner
}

// Notifier получает уведомления об изменившихся коллекциях для раздачи
// зрителям. Реализуется realtime.Hub.
type Notifier interface {
	NotifyGame(gameID string, event string, payload interface{})
	NotifyAll(event string, payload interface{})
}

type eventService struct {
	store   store.EventStore
	catalog *catalog.Catalog
	notif   Notifier
	logger  *slog.Logger

	mu        sync.RWMutex
	schedules map[string][]models.ScheduleEntry
	results   map[string][]models.ResultEntry
	live      []models.LiveFlag
	brackets  map[string]models.Bracket

	idMu   sync.Mutex
	lastID int64
}

func NewEventService(st store.EventStore, cat *catalog.Catalog, notif Notifier, logger *slog.Logger) EventService {
	return &eventService{
		store:     st,
		catalog:   cat,
		notif:     notif,
		logger:    logger,
		schedules: make(map[string][]models.ScheduleEntry),
		results:   make(map[string][]models.ResultEntry),
		brackets:  make(map[string]models.Bracket),
	}
}

// Start подписывается на все четыре коллекции, блокируясь до первого снимка
// каждой, и запускает горутины, применяющие последующие снимки. Пустые
// schedules/results засеваются данными каталога; live-флаги и сетки
// стартуют пустыми без засева.
func (s *eventService) Start(ctx context.Context) error {
	scheduleSeed, err := marshalSeed(s.catalog.SeedSchedules())
	if err != nil {
		return fmt.Errorf("failed to marshal schedule seed: %w", err)
	}
	resultSeed, err := marshalSeed(s.catalog.SeedResults())
	if err != nil {
		return fmt.Errorf("failed to marshal result seed: %w", err)
	}

	subscriptions := []struct {
		collection store.Collection
		seed       map[string]json.RawMessage
	}{
		{store.CollectionSchedules, scheduleSeed},
		{store.CollectionResults, resultSeed},
		{store.CollectionLiveMatches, nil},
		{store.CollectionBrackets, nil},
	}

	for _, sub := range subscriptions {
		ch, err := s.store.Subscribe(ctx, sub.collection, sub.seed)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", sub.collection, err)
		}
		select {
		case snap, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription to %s closed before first snapshot", sub.collection)
			}
			s.apply(snap)
		case <-ctx.Done():
			return ctx.Err()
		}
		go s.watch(ctx, ch)
	}
	return nil
}

func (s *eventService) watch(ctx context.Context, ch <-chan store.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			s.apply(snap)
		}
	}
}

// apply декодирует снимок и замещает соответствующую часть локального кэша.
// Снимок, который не удалось декодировать, игнорируется: кэш остаётся на
// последнем валидном состоянии.
func (s *eventService) apply(snap store.Snapshot) {
	switch snap.Collection {
	case store.CollectionSchedules:
		next := make(map[string][]models.ScheduleEntry, len(snap.Values))
		if !decodeValues(snap, next, s.logger) {
			return
		}
		s.mu.Lock()
		s.schedules = next
		s.mu.Unlock()
		if s.notif != nil {
			for gameID, entries := range next {
				s.notif.NotifyGame(gameID, "SCHEDULES_UPDATED", entries)
			}
		}
	case store.CollectionResults:
		next := make(map[string][]models.ResultEntry, len(snap.Values))
		if !decodeValues(snap, next, s.logger) {
			return
		}
		s.mu.Lock()
		s.results = next
		s.mu.Unlock()
		if s.notif != nil {
			for gameID, entries := range next {
				s.notif.NotifyGame(gameID, "RESULTS_UPDATED", entries)
			}
		}
	case store.CollectionLiveMatches:
		var flags []models.LiveFlag
		if raw, ok := snap.Values[store.LiveMatchesKey]; ok {
			if err := json.Unmarshal(raw, &flags); err != nil {
				s.logger.Error("failed to decode live matches snapshot", slog.Any("error", err))
				return
			}
		}
		if flags == nil {
			flags = []models.LiveFlag{}
		}
		s.mu.Lock()
		s.live = flags
		s.mu.Unlock()
		if s.notif != nil {
			s.notif.NotifyAll("LIVE_UPDATED", flags)
		}
	case store.CollectionBrackets:
		next := make(map[string]models.Bracket, len(snap.Values))
		if !decodeValues(snap, next, s.logger) {
			return
		}
		s.mu.Lock()
		s.brackets = next
		s.mu.Unlock()
		if s.notif != nil {
			for gameID, bracket := range next {
				s.notif.NotifyGame(gameID, "BRACKET_UPDATED", bracket)
			}
		}
	}
}

func decodeValues[T any](snap store.Snapshot, dst map[string]T, logger *slog.Logger) bool {
	for key, raw := range snap.Values {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			logger.Error("failed to decode snapshot value",
				slog.String("collection", string(snap.Collection)),
				slog.String("key", key),
				slog.Any("error", err))
			return false
		}
		dst[key] = v
	}
	return true
}

func marshalSeed[T any](seed map[string]T) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(seed))
	for key, v := range seed {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[key] = raw
	}
	return out, nil
}

// nextID выдаёт свежий идентификатор на основе текущего времени в
// миллисекундах; монотонность гарантируется даже при нескольких вызовах
// в одну миллисекунду.
func (s *eventService) nextID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *eventService) authorize(actor Actor, gameID string) error {
	if !actor.CanEdit {
		return ErrForbiddenOperation
	}
	if gameID != "" {
		if _, ok := s.catalog.Get(gameID); !ok {
			return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
	}
	return nil
}

func (s *eventService) writeJSON(ctx context.Context, collection store.Collection, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", collection, key, err)
	}
	if err := s.store.Write(ctx, collection, key, raw); err != nil {
		return fmt.Errorf("%w: %s/%s: %w", ErrStoreWriteFailed, collection, key, err)
	}
	return nil
}

func (s *eventService) AddSchedule(ctx context.Context, actor Actor, gameID string, entry models.ScheduleEntry) (models.ScheduleEntry, error) {
	if err := s.authorize(actor, gameID); err != nil {
		return models.ScheduleEntry{}, err
	}
	entry.ID = s.nextID()
	if entry.Participants.Kind == "" {
		entry.Participants.Kind = s.catalog.Kind(gameID)
	}

	s.mu.RLock()
	updated := append(copySchedules(s.schedules[gameID]), entry)
	s.mu.RUnlock()

	if err := s.writeJSON(ctx, store.CollectionSchedules, gameID, updated); err != nil {
		return models.ScheduleEntry{}, err
	}
	return entry, nil
}

// UpdateSchedule замещает поля записи с данным id. Отсутствующий id — no-op:
// список переписывается без изменений.
func (s *eventService) UpdateSchedule(ctx context.Context, actor Actor, gameID string, id int64, entry models.ScheduleEntry) error {
	if err := s.authorize(actor, gameID); err != nil {
		return err
	}
	if entry.Participants.Kind == "" {
		entry.Participants.Kind = s.catalog.Kind(gameID)
	}

	s.mu.RLock()
	updated := copySchedules(s.schedules[gameID])
	s.mu.RUnlock()
	for i := range updated {
		if updated[i].ID == id {
			entry.ID = id
			updated[i] = entry
			break
		}
	}
	return s.writeJSON(ctx, store.CollectionSchedules, gameID, updated)
}

func (s *eventService) DeleteSchedule(ctx context.Context, actor Actor, gameID string, id int64) error {
	if err := s.authorize(actor, gameID); err != nil {
		return err
	}
	s.mu.RLock()
	current := copySchedules(s.schedules[gameID])
	s.mu.RUnlock()
	updated := removeSchedule(current, id)
	return s.writeJSON(ctx, store.CollectionSchedules, gameID, updated)
}

// AddResult записывает результат и, если указан scheduleId, выполняет каскад:
// отзывает соответствующую запись расписания и снимает её live-флаг. Три
// записи независимы и не атомарны как группа — сбой между ними может оставить
// результат с неотозванным расписанием; это задокументированная опасность,
// а не дефект.
func (s *eventService) AddResult(ctx context.Context, actor Actor, gameID string, result models.ResultEntry) (models.ResultEntry, error) {
	if err := s.authorize(actor, gameID); err != nil {
		return models.ResultEntry{}, err
	}
	result.ID = s.nextID()
	result.Timestamp = time.Now().UTC()
	if result.Participants.Kind == "" {
		result.Participants.Kind = s.catalog.Kind(gameID)
	}

	s.mu.RLock()
	updatedResults := append(copyResults(s.results[gameID]), result)
	schedules := copySchedules(s.schedules[gameID])
	liveFlags := copyFlags(s.live)
	s.mu.RUnlock()

	if err := s.writeJSON(ctx, store.CollectionResults, gameID, updatedResults); err != nil {
		return models.ResultEntry{}, err
	}

	if result.ScheduleID == 0 {
		return result, nil
	}

	// Отзыв расписания: для уже отсутствующей записи каскад не срабатывает.
	if retracted := removeSchedule(schedules, result.ScheduleID); len(retracted) != len(schedules) {
		if err := s.writeJSON(ctx, store.CollectionSchedules, gameID, retracted); err != nil {
			return result, err
		}
	}

	if cleared := removeFlag(liveFlags, result.ScheduleID); len(cleared) != len(liveFlags) {
		if err := s.writeJSON(ctx, store.CollectionLiveMatches, store.LiveMatchesKey, cleared); err != nil {
			return result, err
		}
	}
	return result, nil
}

// UpdateResult замещает поля результата с данным id; id и исходная метка
// времени сохраняются. Каскадов нет.
func (s *eventService) UpdateResult(ctx context.Context, actor Actor, gameID string, id int64, result models.ResultEntry) error {
	if err := s.authorize(actor, gameID); err != nil {
		return err
	}
	if result.Participants.Kind == "" {
		result.Participants.Kind = s.catalog.Kind(gameID)
	}

	s.mu.RLock()
	updated := copyResults(s.results[gameID])
	s.mu.RUnlock()
	for i := range updated {
		if updated[i].ID == id {
			result.ID = id
			if result.Timestamp.IsZero() {
				result.Timestamp = updated[i].Timestamp
			}
			updated[i] = result
			break
		}
	}
	return s.writeJSON(ctx, store.CollectionResults, gameID, updated)
}

func (s *eventService) DeleteResult(ctx context.Context, actor Actor, gameID string, id int64) error {
	if err := s.authorize(actor, gameID); err != nil {
		return err
	}
	s.mu.RLock()
	current := copyResults(s.results[gameID])
	s.mu.RUnlock()
	updated := current[:0:0]
	for _, r := range current {
		if r.ID != id {
			updated = append(updated, r)
		}
	}
	return s.writeJSON(ctx, store.CollectionResults, gameID, updated)
}

// SetLive включает или снимает live-флаг матча. Включение идемпотентно:
// прежний флаг того же матча снимается перед добавлением, так что на matchId
// приходится не более одного флага.
func (s *eventService) SetLive(ctx context.Context, actor Actor, gameID string, matchID int64, isLive bool) error {
	if err := s.authorize(actor, gameID); err != nil {
		return err
	}
	s.mu.RLock()
	flags := copyFlags(s.live)
	s.mu.RUnlock()

	updated := removeFlag(flags, matchID)
	if isLive {
		updated = append(updated, models.LiveFlag{GameID: gameID, MatchID: matchID})
	}
	return s.writeJSON(ctx, store.CollectionLiveMatches, store.LiveMatchesKey, updated)
}

// ClearAllLive снимает все live-флаги всех игр одной записью.
func (s *eventService) ClearAllLive(ctx context.Context, actor Actor) error {
	if err := s.authorize(actor, ""); err != nil {
		return err
	}
	return s.writeJSON(ctx, store.CollectionLiveMatches, store.LiveMatchesKey, []models.LiveFlag{})
}

// UpdateBracket перезаписывает вручную курируемую сетку игры целиком.
func (s *eventService) UpdateBracket(ctx context.Context, actor Actor, gameID string, bracket models.Bracket) error {
	if err := s.authorize(actor, gameID); err != nil {
		return err
	}
	return s.writeJSON(ctx, store.CollectionBrackets, gameID, bracket)
}

func (s *eventService) Schedules(gameID string) []models.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySchedules(s.schedules[gameID])
}

// PendingSchedules возвращает записи расписания, на которые ещё не ссылается
// ни один результат: из них администратор выбирает матч для ввода результата.
func (s *eventService) PendingSchedules(gameID string) []models.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := make(map[int64]bool, len(s.results[gameID]))
	for _, r := range s.results[gameID] {
		if r.ScheduleID != 0 {
			resolved[r.ScheduleID] = true
		}
	}
	var pending []models.ScheduleEntry
	for _, e := range s.schedules[gameID] {
		if !resolved[e.ID] {
			pending = append(pending, e)
		}
	}
	return pending
}

func (s *eventService) Results(gameID string) []models.ResultEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyResults(s.results[gameID])
}

func (s *eventService) Standings(gameID string, groupName string) []standings.TableRow {
	s.mu.RLock()
	results := copyResults(s.results[gameID])
	s.mu.RUnlock()
	return standings.Compute(results, groupName)
}

func (s *eventService) Groups(gameID string) []string {
	s.mu.RLock()
	schedules := copySchedules(s.schedules[gameID])
	s.mu.RUnlock()
	return standings.Groups(schedules)
}

func (s *eventService) KnockoutView(gameID string) brackets.View {
	s.mu.RLock()
	schedules := copySchedules(s.schedules[gameID])
	results := copyResults(s.results[gameID])
	s.mu.RUnlock()
	return brackets.Reconcile(schedules, results)
}

// BracketFor возвращает сохранённую вручную сетку игры, либо синтезированную
// заглушку, когда сохранённой нет.
func (s *eventService) BracketFor(gameID string) models.Bracket {
	s.mu.RLock()
	bracket, ok := s.brackets[gameID]
	s.mu.RUnlock()
	if !ok {
		return brackets.Placeholder()
	}
	return bracket
}

func (s *eventService) IsLive(gameID string, matchID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.live {
		if f.GameID == gameID && f.MatchID == matchID {
			return true
		}
	}
	return false
}

func (s *eventService) LiveForGame(gameID string) []models.LiveFlag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.LiveFlag
	for _, f := range s.live {
		if f.GameID == gameID {
			out = append(out, f)
		}
	}
	return out
}

func (s *eventService) AllLive() []models.LiveFlag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFlags(s.live)
}

func (s *eventService) LiveBannerFor(gameID string) LiveBanner {
	matches := s.LiveForGame(gameID)
	if matches == nil {
		matches = []models.LiveFlag{}
	}
	return LiveBanner{GameID: gameID, Count: len(matches), Matches: matches}
}

func copySchedules(in []models.ScheduleEntry) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(in))
	copy(out, in)
	return out
}

func copyResults(in []models.ResultEntry) []models.ResultEntry {
	out := make([]models.ResultEntry, len(in))
	copy(out, in)
	return out
}

func copyFlags(in []models.LiveFlag) []models.LiveFlag {
	out := make([]models.LiveFlag, len(in))
	copy(out, in)
	return out
}

func removeSchedule(in []models.ScheduleEntry, id int64) []models.ScheduleEntry {
	out := in[:0:0]
	for _, e := range in {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func removeFlag(in []models.LiveFlag, matchID int64) []models.LiveFlag {
	out := in[:0:0]
	for _, f := range in {
		if f.MatchID != matchID {
			out = append(out, f)
		}
	}
	return out
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sportsfest/sportsday-live/brackets"
	"github.com/sportsfest/sportsday-live/catalog"
	"github.com/sportsfest/sportsday-live/models"
	"github.com/sportsfest/sportsday-live/standings"
	"github.com/sportsfest/sportsday-live/storage"
)

// GameSnapshot — полное производное состояние одной игры.
type GameSnapshot struct {
	Game      models.Game                     `json:"game"`
	Schedules []models.ScheduleEntry          `json:"schedules"`
	Results   []models.ResultEntry            `json:"results"`
	Standings map[string][]standings.TableRow `json:"standings,omitempty"`
	Knockout  brackets.View                   `json:"knockout"`
	Bracket   models.Bracket                  `json:"bracket"`
}

// ExportDocument — статический слепок состояния турнира, публикуемый в
// объектное хранилище как зеркало для зрителей.
type ExportDocument struct {
	GeneratedAt time.Time               `json:"generated_at"`
	LiveMatches []models.LiveFlag       `json:"live_matches"`
	Games       map[string]GameSnapshot `json:"games"`
}

// ExportService публикует слепок состояния турнира в объектное хранилище и
// возвращает публичный URL. При отсутствии настроенного хранилища экспорт
// отключён.
type ExportService interface {
	ExportSnapshot(ctx context.Context, actor Actor) (string, error)
}

type exportService struct {
	events   EventService
	catalog  *catalog.Catalog
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewExportService(events EventService, cat *catalog.Catalog, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{events: events, catalog: cat, uploader: uploader, logger: logger}
}

func (s *exportService) ExportSnapshot(ctx context.Context, actor Actor) (string, error) {
	if !actor.CanEdit {
		return "", ErrForbiddenOperation
	}
	if s.uploader == nil {
		return "", ErrExportDisabled
	}

	doc := ExportDocument{
		GeneratedAt: time.Now().UTC(),
		LiveMatches: s.events.AllLive(),
		Games:       make(map[string]GameSnapshot),
	}

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	for _, game := range s.catalog.Games() {
		game := game
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			snap := GameSnapshot{
				Game:      game,
				Schedules: s.events.Schedules(game.ID),
				Results:   s.events.Results(game.ID),
				Knockout:  s.events.KnockoutView(game.ID),
				Bracket:   s.events.BracketFor(game.ID),
			}
			if game.HasGroupStage {
				snap.Standings = make(map[string][]standings.TableRow)
				for _, group := range s.events.Groups(game.ID) {
					snap.Standings[group] = s.events.Standings(game.ID, group)
				}
			}
			mu.Lock()
			doc.Games[game.ID] = snap
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to assemble snapshot: %w", err)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/sportsday-%s.json", doc.GeneratedAt.Format("20060102-150405"))
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}
	s.logger.Info("snapshot exported",
		slog.String("key", result.Key),
		slog.String("location", result.Location),
		slog.String("actor", actor.Name))
	return result.Location, nil
}

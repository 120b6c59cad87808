package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsfest/sportsday-live/catalog"
)

type GameHandler struct {
	catalog *catalog.Catalog
}

func NewGameHandler(cat *catalog.Catalog) *GameHandler {
	return &GameHandler{catalog: cat}
}

// List возвращает каталог игр турнира.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"games": h.catalog.Games(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get возвращает одну игру каталога по id.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game, ok := h.catalog.Get(gameID)
	if !ok {
		notFoundResponse(w, r)
		return
	}

	response := jsonResponse{
		"game": game,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsfest/sportsday-live/middleware"
	"github.com/sportsfest/sportsday-live/models"
	"github.com/sportsfest/sportsday-live/services"
)

type BracketHandler struct {
	service services.EventService
}

func NewBracketHandler(service services.EventService) *BracketHandler {
	return &BracketHandler{service: service}
}

// Get возвращает сохранённую сетку игры; если администратор ещё не
// сохранял сетку — шаблон-заглушку с местами Participant 1..8.
func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	response := jsonResponse{
		"bracket": h.service.BracketFor(gameID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update перезаписывает сетку игры целиком.
func (h *BracketHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var bracket models.Bracket
	if err := readJSON(w, r, &bracket); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.UpdateBracket(r.Context(), actor, gameID, bracket); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Knockout возвращает согласованное представление стадии плей-офф,
// собранное из расписания и результатов.
func (h *BracketHandler) Knockout(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	view := h.service.KnockoutView(gameID)
	response := jsonResponse{
		"rounds":   view.Rounds,
		"has_data": view.HasData,
		"champion": view.Champion,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsfest/sportsday-live/middleware"
	"github.com/sportsfest/sportsday-live/services"
)

type LiveHandler struct {
	service services.EventService
}

func NewLiveHandler(service services.EventService) *LiveHandler {
	return &LiveHandler{service: service}
}

// All возвращает все live-флаги турнира.
func (h *LiveHandler) All(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"live_matches": h.service.AllLive(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Banner возвращает сводку live-матчей одной игры для зрительского баннера.
func (h *LiveHandler) Banner(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	response := jsonResponse{
		"banner": h.service.LiveBannerFor(gameID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// IsLive отвечает, идёт ли сейчас конкретный матч.
func (h *LiveHandler) IsLive(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	matchID, err := parseIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"is_live": h.service.IsLive(gameID, matchID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Set включает или выключает live-флаг матча.
func (h *LiveHandler) Set(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	matchID, err := parseIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		IsLive bool `json:"isLive"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.SetLive(r.Context(), actor, gameID, matchID, input.IsLive); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearAll снимает все live-флаги турнира одной записью.
func (h *LiveHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.ClearAllLive(r.Context(), actor); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

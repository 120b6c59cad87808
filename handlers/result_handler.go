package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsfest/sportsday-live/middleware"
	"github.com/sportsfest/sportsday-live/models"
	"github.com/sportsfest/sportsday-live/services"
)

type ResultHandler struct {
	service services.EventService
}

func NewResultHandler(service services.EventService) *ResultHandler {
	return &ResultHandler{service: service}
}

// List возвращает все результаты игры.
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	response := jsonResponse{
		"results": h.service.Results(gameID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create записывает результат. Если в теле указан scheduleId, сервис
// дополнительно уберёт матч из расписания и снимет с него live-флаг.
func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var result models.ResultEntry
	if err := readJSON(w, r, &result); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	created, err := h.service.AddResult(r.Context(), actor, gameID, result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"result": created,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	id, err := parseIDParam(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var result models.ResultEntry
	if err := readJSON(w, r, &result); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.UpdateResult(r.Context(), actor, gameID, id, result); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	id, err := parseIDParam(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.DeleteResult(r.Context(), actor, gameID, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

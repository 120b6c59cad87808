package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sportsfest/sportsday-live/middleware"
	"github.com/sportsfest/sportsday-live/models"
	"github.com/sportsfest/sportsday-live/services"
)

type ScheduleHandler struct {
	service services.EventService
}

func NewScheduleHandler(service services.EventService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// List возвращает все матчи расписания игры.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	response := jsonResponse{
		"schedules": h.service.Schedules(gameID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Pending возвращает матчи без сыгранного результата — «предстоящие».
func (h *ScheduleHandler) Pending(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	response := jsonResponse{
		"schedules": h.service.PendingSchedules(gameID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var entry models.ScheduleEntry
	if err := readJSON(w, r, &entry); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	created, err := h.service.AddSchedule(r.Context(), actor, gameID, entry)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"schedule": created,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	id, err := parseIDParam(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var entry models.ScheduleEntry
	if err := readJSON(w, r, &entry); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.UpdateSchedule(r.Context(), actor, gameID, id, entry); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	id, err := parseIDParam(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.service.DeleteSchedule(r.Context(), actor, gameID, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

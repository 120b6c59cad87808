package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsfest/sportsday-live/services"
)

type StandingsHandler struct {
	service services.EventService
}

func NewStandingsHandler(service services.EventService) *StandingsHandler {
	return &StandingsHandler{service: service}
}

// Groups возвращает имена групп, встречающихся в расписании игры.
func (h *StandingsHandler) Groups(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	response := jsonResponse{
		"groups": h.service.Groups(gameID),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Table возвращает турнирную таблицу группы, пересчитанную из результатов.
func (h *StandingsHandler) Table(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	groupName := r.URL.Query().Get("group")
	if groupName == "" {
		badRequestResponse(w, r, errors.New("group query parameter is required"))
		return
	}

	response := jsonResponse{
		"group": groupName,
		"table": h.service.Standings(gameID, groupName),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

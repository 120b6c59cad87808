package handlers

import (
	"net/http"

	"github.com/sportsfest/sportsday-live/middleware"
	"github.com/sportsfest/sportsday-live/services"
)

type ExportHandler struct {
	service services.ExportService
}

func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Snapshot собирает полный снимок турнира и выгружает его в объектное
// хранилище. Возвращает публичный URL выгруженного файла.
func (h *ExportHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	location, err := h.service.ExportSnapshot(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"location": location,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

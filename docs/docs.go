// Package docs отдаёт описание HTTP API для Swagger UI.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed swagger.json
var spec []byte

// ServeSpec отдаёт swagger.json.
func ServeSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(spec)
}

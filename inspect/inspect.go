// Package inspect serves a read-only JSON view of a configuration store over HTTP.
//
// Routes:
//
//	GET /config            -> the whole tree
//	GET /config/{path...}  -> the value at path, "Db.host" or "Db/host"
//
// Missing paths and unknown routes answer 404, other methods 405, each with a
// JSON error body.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/0xalexb/hjarta-configure/hash"
)

// Source is the read side of a configuration store.
type Source interface {
	Read(path string) (any, bool)
}

type errorBody struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// NewHandler returns an http.Handler serving src. Encoding failures are
// reported through logger, or slog.Default when logger is nil.
func NewHandler(src Source, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	writeJSON := func(w http.ResponseWriter, status int, body any) {
		encode(w, logger, status, body)
	}

	router := chi.NewRouter()

	router.Get("/config", func(w http.ResponseWriter, _ *http.Request) {
		value, _ := src.Read("")
		writeJSON(w, http.StatusOK, value)
	})

	router.Get("/config/*", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.ReplaceAll(chi.URLParam(r, "*"), "/", hash.Separator), hash.Separator)

		value, found := src.Read(path)
		if !found || path == "" {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "path not found", Path: path})

			return
		}

		writeJSON(w, http.StatusOK, value)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such route", Path: r.URL.Path})
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Path: r.URL.Path})
	})

	return router
}

func encode(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to encode configuration value", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, _ = w.Write(append(data, '\n'))
}

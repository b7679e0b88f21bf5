package httpserver

import (
	"encoding/json"
	"net/http"

	"appstore_reviews/internal/app"
)

type Handlers struct {
	Progress *app.Progress
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) Status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Progress.Snapshot())
}

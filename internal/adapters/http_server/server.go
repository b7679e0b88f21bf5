package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/app"
)

// Server is the optional ops surface of a scrape run: liveness, a JSON
// progress snapshot, and prometheus exposition. It serves nothing
// user-facing; the scrape output is the CSV file.
type Server struct{ mux *chi.Mux }

func New(progress *app.Progress) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(chimw.Timeout(5 * time.Second))
	m.Use(requestLog(log.Logger))

	h := &Handlers{Progress: progress}
	m.Get("/healthz", h.Health)
	m.Get("/status", h.Status)

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g. /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// Serve starts the ops server in the background. A one-shot scrape exits
// with the process, so there is no graceful shutdown path.
func Serve(addr string, s *Server) {
	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           s.Mux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("ops server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("ops server failed")
		}
	}()
}

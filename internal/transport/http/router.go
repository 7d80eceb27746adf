package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reclaim/internal/platform/middleware"
)

// NewRouter wires all public endpoints with middleware.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/students", h.HandleRegisterStudent)
	r.Post("/lost-items", h.HandleReportLost)
	r.Post("/found-items", h.HandleSubmitFound)

	r.Get("/matches", h.HandleFindMatches)
	r.Get("/students/{id}/matches", h.HandleStudentMatches)
	r.Post("/matches/confirm", h.HandleConfirmMatch)

	r.Get("/stats", h.HandleStatistics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

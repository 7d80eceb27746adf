package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"reclaim/internal/lostfound"
	"reclaim/internal/matching"
	matchmetrics "reclaim/internal/matching/metrics"
	"reclaim/internal/platform/config"
	"reclaim/internal/platform/httpserver"
	"reclaim/internal/platform/logger"
	"reclaim/internal/store"
	httptransport "reclaim/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing reclaim",
		"addr", cfg.Addr,
		"poll_interval", cfg.PollInterval.String(),
	)

	docs := store.NewInMemory()

	matcher := matching.New(docs,
		matching.WithLogger(log),
		matching.WithMetrics(matchmetrics.New()),
		matching.WithTracer(matching.NewOTelTracer()),
	)
	records := lostfound.NewService(docs, lostfound.WithLogger(log))

	handler := httptransport.NewHandler(matcher, records, log)
	router := httptransport.NewRouter(handler, log)

	srv := httpserver.New(cfg.Addr, router)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if !cfg.WatchDisabled {
		watcher := matching.NewWatcher(matcher, docs, cfg.PollInterval,
			func(ctx context.Context, student lostfound.Student, matches []matching.CandidateMatch) {
				log.InfoContext(ctx, "potential matches for open claim",
					"student_id", student.ID,
					"candidates", len(matches),
					"top_score", matches[0].Score,
				)
			}, log)
		go watcher.Run(watchCtx)
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

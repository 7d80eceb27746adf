package matching

import (
	"context"
	"log/slog"
	"time"

	"reclaim/internal/lostfound"
	"reclaim/internal/store"
)

// NotifyFunc receives fresh candidate matches for a student with an open
// lost-ID claim.
type NotifyFunc func(ctx context.Context, student lostfound.Student, matches []CandidateMatch)

// Watcher periodically re-runs the match search for students with open
// claims. Polling stands in for a storage-side subscription; the interval is
// always supplied by the caller, never fixed here.
type Watcher struct {
	service  *Service
	store    store.DocumentStore
	interval time.Duration
	notify   NotifyFunc
	logger   *slog.Logger
}

// NewWatcher creates a watcher. Panics on missing dependencies or a
// non-positive interval - fail fast at startup.
func NewWatcher(service *Service, docs store.DocumentStore, interval time.Duration, notify NotifyFunc, logger *slog.Logger) *Watcher {
	if service == nil {
		panic("matching.NewWatcher: service is required")
	}
	if docs == nil {
		panic("matching.NewWatcher: document store is required")
	}
	if interval <= 0 {
		panic("matching.NewWatcher: poll interval must be positive")
	}
	if notify == nil {
		panic("matching.NewWatcher: notify func is required")
	}
	return &Watcher{
		service:  service,
		store:    docs,
		interval: interval,
		notify:   notify,
		logger:   logger,
	}
}

// Run polls until the context is cancelled. Each tick scans students with an
// open claim and delivers any nonzero-score candidates to the notify func.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Watcher) sweep(ctx context.Context) {
	docs, err := w.store.QueryWhere(ctx, store.CollectionStudents, lostfound.FieldHasLostID, true)
	if err != nil {
		if w.logger != nil {
			w.logger.ErrorContext(ctx, "watcher student scan failed", "error", err)
		}
		return
	}

	for _, doc := range docs {
		student := lostfound.StudentFromDocument(doc)
		matches := w.service.FindMatches(ctx, ClaimedIdentity{
			RegistrationNumber: student.RegNumber,
			FullName:           student.FullName,
		})
		if len(matches) == 0 {
			continue
		}
		w.notify(ctx, student, matches)
	}
}

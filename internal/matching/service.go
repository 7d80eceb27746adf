package matching

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"reclaim/internal/lostfound"
	"reclaim/internal/matching/metrics"
	"reclaim/internal/store"
	dErrors "reclaim/pkg/domain-errors"
)

// Service runs match searches over the unmatched found-item pool and applies
// confirmed matches across the three linked records. The scoring itself is
// pure; the service adds the storage collaborator, logging, and metrics.
type Service struct {
	store   store.DocumentStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  Tracer
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer sets the span tracer for the service.
func WithTracer(t Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithClock injects the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a matching service. Panics if the store is nil - fail fast at
// startup.
func New(docs store.DocumentStore, opts ...Option) *Service {
	if docs == nil {
		panic("matching.New: document store is required")
	}
	s := &Service{
		store:  docs,
		tracer: noopTracer{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindMatches scores every unmatched found item against the claimed identity
// and returns the candidates with a nonzero score, ranked by descending
// score. Ties keep retrieval order, so repeated calls over unchanged data
// return the same sequence. Storage failures are logged and produce an empty
// result; this operation never surfaces an error to its caller.
func (s *Service) FindMatches(ctx context.Context, claimed ClaimedIdentity) []CandidateMatch {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "matching.FindMatches",
		Attribute{Key: "registration_number", Value: claimed.RegistrationNumber},
	)
	defer func() { span.End(nil) }()
	if s.metrics != nil {
		defer s.metrics.ObserveSearch(start)
	}

	docs, err := s.store.QueryWhere(ctx, store.CollectionFoundItems, lostfound.FieldMatched, false)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "found item pool read failed", "error", err)
		}
		if s.metrics != nil {
			s.metrics.IncrementStoreReadFailures()
		}
		return nil
	}

	candidates := make([]CandidateMatch, 0, len(docs))
	for _, doc := range docs {
		item := lostfound.FoundItemFromDocument(doc)
		score := Score(claimed, ExtractedIdentity{
			Name:               item.ExtractedName,
			RegistrationNumber: item.ExtractedAdmission,
		})
		if score == 0 {
			continue
		}
		candidates = append(candidates, CandidateMatch{
			FoundItemID:        item.ID,
			ExtractedName:      item.ExtractedName,
			ExtractedAdmission: item.ExtractedAdmission,
			Score:              score,
			Confidence:         ConfidenceFor(score),
		})
	}

	// Stable sort keeps retrieval order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if s.metrics != nil {
		for _, c := range candidates {
			s.metrics.IncrementCandidates(string(c.Confidence))
		}
	}
	span.SetAttributes(Attribute{Key: "candidates", Value: len(candidates)})
	return candidates
}

// ConfirmMatch marks the found item matched, the lost item found, and the
// student record recovered, sharing one timestamp across all three updates.
// The storage collaborator offers no multi-document transaction, so partial
// failures are compensated by reverting already-applied writes; a rollback
// failure is logged loudly because it leaves the records cross-referenced
// inconsistently until VerifyMatchLinks repairs them.
func (s *Service) ConfirmMatch(ctx context.Context, req ConfirmRequest) error {
	ctx, span := s.tracer.Start(ctx, "matching.ConfirmMatch",
		Attribute{Key: "found_item_id", Value: req.FoundItemID},
		Attribute{Key: "lost_item_id", Value: req.LostItemID},
	)
	var confirmErr error
	defer func() { span.End(confirmErr) }()

	if confirmErr = req.Validate(); confirmErr != nil {
		return confirmErr
	}

	// Validate current state before writing: a second confirmation on an
	// already-matched item must be rejected.
	foundDoc, err := s.store.Get(ctx, store.CollectionFoundItems, req.FoundItemID)
	if err != nil {
		confirmErr = dErrors.Wrap(err, dErrors.CodeNotFound, "found item not found")
		s.recordConfirmation("not_found")
		return confirmErr
	}
	if lostfound.FoundItemFromDocument(foundDoc).Matched {
		confirmErr = dErrors.New(dErrors.CodeInvalidState, "found item is already matched")
		s.recordConfirmation("already_matched")
		return confirmErr
	}

	now := s.now().Format(lostfound.TimeFormat)

	writes := []confirmWrite{
		{
			collection: store.CollectionFoundItems,
			id:         req.FoundItemID,
			fields: store.Document{
				lostfound.FieldMatched:     true,
				lostfound.FieldMatchedWith: req.LostItemID,
				lostfound.FieldMatchedAt:   now,
				lostfound.FieldMatchedBy:   req.StudentID,
			},
			revert: store.Document{
				lostfound.FieldMatched:     false,
				lostfound.FieldMatchedWith: "",
				lostfound.FieldMatchedAt:   "",
				lostfound.FieldMatchedBy:   "",
			},
		},
		{
			collection: store.CollectionLostItems,
			id:         req.LostItemID,
			fields: store.Document{
				lostfound.FieldFound:       true,
				lostfound.FieldFoundAt:     now,
				lostfound.FieldMatchedWith: req.FoundItemID,
			},
			revert: store.Document{
				lostfound.FieldFound:       false,
				lostfound.FieldFoundAt:     "",
				lostfound.FieldMatchedWith: "",
			},
		},
		{
			collection: store.CollectionStudents,
			id:         req.StudentID,
			fields: store.Document{
				lostfound.FieldHasLostID: false,
				lostfound.FieldIDFound:   true,
				lostfound.FieldIDFoundAt: now,
			},
			revert: store.Document{
				lostfound.FieldHasLostID: true,
				lostfound.FieldIDFound:   false,
				lostfound.FieldIDFoundAt: "",
			},
		},
	}

	for i, w := range writes {
		if err := s.store.UpdateFields(ctx, w.collection, w.id, w.fields); err != nil {
			s.rollback(ctx, writes[:i])
			s.recordConfirmation("failed")
			confirmErr = dErrors.Wrap(err, dErrors.CodeUnavailable, "match confirmation failed: "+w.collection)
			return confirmErr
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "match confirmed",
			"found_item_id", req.FoundItemID,
			"lost_item_id", req.LostItemID,
			"student_id", req.StudentID,
		)
	}
	s.recordConfirmation("confirmed")
	return nil
}

// confirmWrite is one of the three linked confirmation updates together with
// the merge-update that undoes it.
type confirmWrite struct {
	collection string
	id         string
	fields     store.Document
	revert     store.Document
}

// rollback reverts already-applied confirmation writes in reverse order.
func (s *Service) rollback(ctx context.Context, applied []confirmWrite) {
	for i := len(applied) - 1; i >= 0; i-- {
		w := applied[i]
		if err := s.store.UpdateFields(ctx, w.collection, w.id, w.revert); err != nil && s.logger != nil {
			// The records are now cross-referenced inconsistently; surface it
			// for the reconciliation pass instead of ignoring it.
			s.logger.ErrorContext(ctx, "rollback failed, records inconsistent",
				"collection", w.collection,
				"id", w.id,
				"error", err,
			)
		}
	}
}

func (s *Service) recordConfirmation(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementConfirmation(outcome)
	}
}

// VerifyMatchLinks reads the three records of a confirmed match and reports
// whether their cross-reference fields are mutually consistent. Used by the
// reconciliation pass to detect partial confirmation damage.
func (s *Service) VerifyMatchLinks(ctx context.Context, req ConfirmRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	foundDoc, err := s.store.Get(ctx, store.CollectionFoundItems, req.FoundItemID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "found item not found")
	}
	lostDoc, err := s.store.Get(ctx, store.CollectionLostItems, req.LostItemID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "lost item not found")
	}
	studentDoc, err := s.store.Get(ctx, store.CollectionStudents, req.StudentID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "student not found")
	}

	found := lostfound.FoundItemFromDocument(foundDoc)
	lost := lostfound.LostItemFromDocument(lostDoc)
	student := lostfound.StudentFromDocument(studentDoc)

	switch {
	case !found.Matched || found.MatchedWith != req.LostItemID:
		return dErrors.New(dErrors.CodeInvalidState, "found item does not reference the lost item")
	case !lost.Found || lost.MatchedWith != req.FoundItemID:
		return dErrors.New(dErrors.CodeInvalidState, "lost item does not reference the found item")
	case !student.IDFound:
		return dErrors.New(dErrors.CodeInvalidState, "student record not marked recovered")
	}
	return nil
}

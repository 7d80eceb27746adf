package lostfound

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"reclaim/internal/extract"
	"reclaim/internal/ocr"
	"reclaim/internal/sentinel"
	"reclaim/internal/store"
	dErrors "reclaim/pkg/domain-errors"
)

// Service manages student, lost-item, and found-item records. Identity
// extraction happens at submission time so a found item is immediately
// searchable by the matcher.
type Service struct {
	store  store.DocumentStore
	ocr    *ocr.Service
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithOCR attaches a recognition fan-out service so found items can be
// submitted as image variants instead of pre-recognized text.
func WithOCR(o *ocr.Service) Option {
	return func(s *Service) { s.ocr = o }
}

// WithClock injects the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator injects the id source for deterministic testing.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a records service. Panics if the store is nil - fail
// fast at startup.
func NewService(docs store.DocumentStore, opts ...Option) *Service {
	if docs == nil {
		panic("lostfound.NewService: document store is required")
	}
	s := &Service{
		store: docs,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterStudent creates a student profile.
func (s *Service) RegisterStudent(ctx context.Context, regNumber, fullName string) (*Student, error) {
	if regNumber == "" || fullName == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "regNumber and fullName are required")
	}
	student := Student{
		ID:        s.newID(),
		RegNumber: regNumber,
		FullName:  fullName,
	}
	if err := s.store.Insert(ctx, store.CollectionStudents, student.ID, student.ToDocument()); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "student registration failed")
	}
	return &student, nil
}

// ReportLost records a lost-ID claim for a student and flags the profile.
// Nothing limits how many open claims a student may accumulate.
func (s *Service) ReportLost(ctx context.Context, studentID string) (*LostItem, error) {
	if studentID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "studentId is required")
	}
	doc, err := s.store.Get(ctx, store.CollectionStudents, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "student lookup failed")
	}
	student := StudentFromDocument(doc)

	item := LostItem{
		ID:                 s.newID(),
		RegistrationNumber: student.RegNumber,
		StudentID:          student.ID,
	}
	if err := s.store.Insert(ctx, store.CollectionLostItems, item.ID, item.ToDocument()); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "lost item report failed")
	}
	if err := s.store.UpdateFields(ctx, store.CollectionStudents, studentID, store.Document{
		FieldHasLostID: true,
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "student flag update failed")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "lost id reported",
			"student_id", studentID,
			"lost_item_id", item.ID,
		)
	}
	return &item, nil
}

// FoundSubmission carries a finder's upload: contact details plus the raw
// OCR text blocks produced by the recognition passes.
type FoundSubmission struct {
	FinderName      string
	FinderPhone     string
	LocationFound   string
	AdditionalNotes string
	RawTexts        []string
}

// SubmitFound extracts the best-guess identity from the submission's raw
// texts and stores the found item unmatched. Extraction misses leave the
// fields empty; they are never an error.
func (s *Service) SubmitFound(ctx context.Context, sub FoundSubmission) (*FoundItem, error) {
	if sub.FinderName == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "finderName is required")
	}

	identity := extract.Extract(sub.RawTexts)
	item := FoundItem{
		ID:                 s.newID(),
		ExtractedName:      identity.Name,
		ExtractedAdmission: identity.RegistrationNumber,
		FinderName:         sub.FinderName,
		FinderPhone:        sub.FinderPhone,
		LocationFound:      sub.LocationFound,
		AdditionalNotes:    sub.AdditionalNotes,
		UploadDate:         s.now(),
	}
	if err := s.store.Insert(ctx, store.CollectionFoundItems, item.ID, item.ToDocument()); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "found item submission failed")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "found id submitted",
			"found_item_id", item.ID,
			"name_detected", identity.Name != "",
			"admission_detected", identity.RegistrationNumber != "",
		)
	}
	return &item, nil
}

// SubmitFoundImages runs the OCR fan-out over the supplied image variants
// and submits whatever text came back. Requires an attached OCR service.
func (s *Service) SubmitFoundImages(ctx context.Context, sub FoundSubmission, variants []ocr.ImageVariant) (*FoundItem, error) {
	if s.ocr == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "ocr engine not configured")
	}
	passes := s.ocr.RecognizeAll(ctx, variants)
	sub.RawTexts = ocr.Texts(passes)
	return s.SubmitFound(ctx, sub)
}

// MatchesForStudent returns the found items already matched to a student.
func (s *Service) MatchesForStudent(ctx context.Context, studentID string) ([]FoundItem, error) {
	if studentID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "studentId is required")
	}
	docs, err := s.store.QueryWhere(ctx, store.CollectionFoundItems, FieldMatchedBy, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "match lookup failed")
	}
	items := make([]FoundItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, FoundItemFromDocument(doc))
	}
	return items, nil
}

// Statistics summarizes the reunite pipeline for the dashboard.
type Statistics struct {
	TotalLost    int
	TotalFound   int
	TotalMatched int
	SuccessRate  float64 // percent of found items matched
}

// Statistics reads the three collections concurrently and derives the
// success rate. A failure of any read fails the whole call; the dashboard
// prefers no numbers over wrong ones.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	var lost, found, matched []store.Document

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lost, err = s.store.GetAll(ctx, store.CollectionLostItems)
		return err
	})
	g.Go(func() error {
		var err error
		found, err = s.store.GetAll(ctx, store.CollectionFoundItems)
		return err
	})
	g.Go(func() error {
		var err error
		matched, err = s.store.QueryWhere(ctx, store.CollectionFoundItems, FieldMatched, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return Statistics{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "statistics read failed")
	}

	stats := Statistics{
		TotalLost:    len(lost),
		TotalFound:   len(found),
		TotalMatched: len(matched),
	}
	if stats.TotalFound > 0 {
		stats.SuccessRate = float64(stats.TotalMatched) / float64(stats.TotalFound) * 100
	}
	return stats, nil
}

// Package ocr fans a set of preprocessed image variants out to a text
// recognition engine, one request per (variant, page segmentation mode)
// combination, and collects whichever passes succeed. The engine itself is a
// collaborator behind the Engine port; this package owns only the
// scatter-gather.
package ocr

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ImageVariant is one preprocessed rendition of the uploaded photo. The
// bytes are opaque to this package.
type ImageVariant struct {
	Name string
	Data []byte
}

// Options configures a single recognition attempt.
type Options struct {
	// PageSegmentationMode controls how the engine partitions the image
	// into text regions before recognizing.
	PageSegmentationMode int
}

// Result is the raw output of one recognition attempt.
type Result struct {
	Text       string
	Confidence float64 // 0-100
}

// Engine is the OCR collaborator port.
type Engine interface {
	Recognize(ctx context.Context, variant ImageVariant, language string, opts Options) (Result, error)
}

// Pass pairs a successful recognition with the configuration that produced it.
type Pass struct {
	Variant string
	PSM     int
	Result  Result
}

// Service issues the multi-pass recognition fan-out.
type Service struct {
	engine   Engine
	language string
	psmModes []int
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLanguage overrides the recognition language (default "eng").
func WithLanguage(lang string) Option {
	return func(s *Service) { s.language = lang }
}

// WithPSMModes overrides the page segmentation modes tried per variant.
func WithPSMModes(modes []int) Option {
	return func(s *Service) { s.psmModes = modes }
}

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates an OCR fan-out service. Panics if the engine is nil - fail
// fast at startup.
func New(engine Engine, opts ...Option) *Service {
	if engine == nil {
		panic("ocr.New: engine is required")
	}
	s := &Service{
		engine:   engine,
		language: "eng",
		psmModes: []int{3, 6, 11, 12},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecognizeAll runs one recognition per (variant, PSM mode) pair
// concurrently and returns the passes that succeeded, in a stable
// variant-major order. Individual failures are logged and dropped; the call
// itself fails only when the context is cancelled before any work completes.
func (s *Service) RecognizeAll(ctx context.Context, variants []ImageVariant) []Pass {
	total := len(variants) * len(s.psmModes)
	if total == 0 {
		return nil
	}

	// Each goroutine writes to its own slot, avoiding data races; nil slots
	// are failed passes and get filtered after the wait.
	results := make([]*Pass, total)

	g, ctx := errgroup.WithContext(ctx)
	for vi, variant := range variants {
		for pi, psm := range s.psmModes {
			variant, psm := variant, psm
			slot := vi*len(s.psmModes) + pi
			g.Go(func() error {
				res, err := s.engine.Recognize(ctx, variant, s.language, Options{PageSegmentationMode: psm})
				if err != nil {
					if s.logger != nil {
						s.logger.DebugContext(ctx, "recognition pass failed",
							"variant", variant.Name,
							"psm", psm,
							"error", err,
						)
					}
					// A failed pass is just missing evidence, not an error.
					return nil
				}
				results[slot] = &Pass{Variant: variant.Name, PSM: psm, Result: res}
				return nil
			})
		}
	}
	_ = g.Wait()

	passes := make([]Pass, 0, total)
	for _, p := range results {
		if p != nil {
			passes = append(passes, *p)
		}
	}
	if s.logger != nil {
		s.logger.Debug("recognition fan-out complete",
			"attempted", total,
			"succeeded", len(passes),
		)
	}
	return passes
}

// Texts extracts the raw text blocks from passes, preserving order.
func Texts(passes []Pass) []string {
	out := make([]string, 0, len(passes))
	for _, p := range passes {
		out = append(out, p.Result.Text)
	}
	return out
}

package ocr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

// stubEngine returns canned results keyed by (variant, psm) and records how
// many recognitions it served.
type stubEngine struct {
	mu    sync.Mutex
	calls int
	fail  map[string]bool
}

func passKey(variant string, psm int) string {
	return fmt.Sprintf("%s/%d", variant, psm)
}

func (e *stubEngine) Recognize(_ context.Context, variant ImageVariant, language string, opts Options) (Result, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	key := passKey(variant.Name, opts.PageSegmentationMode)
	if e.fail[key] {
		return Result{}, errors.New("engine choked on " + key)
	}
	return Result{Text: "text " + key + " " + language, Confidence: 90}, nil
}

// OCRSuite tests the multi-pass recognition fan-out.
type OCRSuite struct {
	suite.Suite
	ctx context.Context
}

func TestOCRSuite(t *testing.T) {
	suite.Run(t, new(OCRSuite))
}

func (s *OCRSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *OCRSuite) TestRecognizeAllCoversEveryPair() {
	engine := &stubEngine{}
	svc := New(engine, WithPSMModes([]int{3, 6}))

	variants := []ImageVariant{{Name: "original"}, {Name: "grayscale"}}
	passes := svc.RecognizeAll(s.ctx, variants)

	s.Equal(4, engine.calls)
	s.Require().Len(passes, 4)

	// Variant-major, PSM order within each variant.
	want := []struct {
		variant string
		psm     int
	}{
		{"original", 3}, {"original", 6},
		{"grayscale", 3}, {"grayscale", 6},
	}
	for i, w := range want {
		s.Equal(w.variant, passes[i].Variant)
		s.Equal(w.psm, passes[i].PSM)
	}
}

func (s *OCRSuite) TestRecognizeAllDropsFailedPasses() {
	engine := &stubEngine{fail: map[string]bool{
		passKey("original", 3): true,
		passKey("original", 6): true,
	}}
	svc := New(engine, WithPSMModes([]int{3, 6}))

	passes := svc.RecognizeAll(s.ctx, []ImageVariant{{Name: "original"}, {Name: "contrast"}})

	s.Require().Len(passes, 2)
	s.Equal("contrast", passes[0].Variant)
	s.Equal("contrast", passes[1].Variant)
}

func (s *OCRSuite) TestRecognizeAllToleratesTotalFailure() {
	engine := &stubEngine{fail: map[string]bool{
		passKey("original", 3): true,
	}}
	svc := New(engine, WithPSMModes([]int{3}))

	passes := svc.RecognizeAll(s.ctx, []ImageVariant{{Name: "original"}})
	s.Empty(passes)
}

func (s *OCRSuite) TestRecognizeAllEmptyInput() {
	engine := &stubEngine{}
	svc := New(engine)

	s.Nil(svc.RecognizeAll(s.ctx, nil))
	s.Zero(engine.calls)
}

func (s *OCRSuite) TestLanguageOverride() {
	engine := &stubEngine{}
	svc := New(engine, WithLanguage("swa"), WithPSMModes([]int{6}))

	passes := svc.RecognizeAll(s.ctx, []ImageVariant{{Name: "original"}})
	s.Require().Len(passes, 1)
	s.Contains(passes[0].Result.Text, "swa")
}

func (s *OCRSuite) TestTextsPreservesOrder() {
	passes := []Pass{
		{Variant: "a", PSM: 3, Result: Result{Text: "first"}},
		{Variant: "a", PSM: 6, Result: Result{Text: "second"}},
		{Variant: "b", PSM: 3, Result: Result{Text: "third"}},
	}
	s.Equal([]string{"first", "second", "third"}, Texts(passes))
}

func (s *OCRSuite) TestNewPanicsWithoutEngine() {
	s.Panics(func() { New(nil) })
}

package matching

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// SimilaritySuite tests the edit-distance similarity measure.
//
// Justification: The 0.7 similarity floor in the scorer sits directly on
// this function; off-by-one distances flip a +30 evidence rule.
type SimilaritySuite struct {
	suite.Suite
}

func TestSimilaritySuite(t *testing.T) {
	suite.Run(t, new(SimilaritySuite))
}

func (s *SimilaritySuite) TestIdentity() {
	for _, str := range []string{"", "a", "john smith", "mwangi"} {
		s.InDelta(1.0, Similarity(str, str), 1e-9, "similarity(%q, %q)", str, str)
	}
}

func (s *SimilaritySuite) TestBothEmpty() {
	s.InDelta(1.0, Similarity("", ""), 1e-9)
}

func (s *SimilaritySuite) TestSymmetry() {
	pairs := [][2]string{
		{"john", "johm"},
		{"", "abc"},
		{"kitten", "sitting"},
		{"john smith", "jon smith"},
	}
	for _, p := range pairs {
		s.InDelta(Similarity(p[0], p[1]), Similarity(p[1], p[0]), 1e-9,
			"similarity(%q,%q) vs reversed", p[0], p[1])
	}
}

func (s *SimilaritySuite) TestKnownDistances() {
	s.Run("single substitution", func() {
		// distance 1 over length 4
		s.InDelta(0.75, Similarity("john", "johm"), 1e-9)
	})

	s.Run("kitten sitting", func() {
		// classic distance 3 over length 7
		s.InDelta(1.0-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	})

	s.Run("completely different", func() {
		s.InDelta(0.0, Similarity("abc", "xyz"), 1e-9)
	})

	s.Run("one empty side", func() {
		s.InDelta(0.0, Similarity("", "abc"), 1e-9)
	})
}

func (s *SimilaritySuite) TestRange() {
	pairs := [][2]string{
		{"a", "abcdefgh"},
		{"short", "a much longer string entirely"},
		{"same", "same"},
	}
	for _, p := range pairs {
		sim := Similarity(p[0], p[1])
		s.GreaterOrEqual(sim, 0.0)
		s.LessOrEqual(sim, 1.0)
	}
}

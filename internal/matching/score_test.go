package matching

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// ScoreSuite tests the additive evidence model and confidence mapping.
//
// Justification: Every ranking decision the finder makes reduces to these
// rule weights; a wrong mutual-exclusion or a missing clamp reorders the
// candidate list users see.
type ScoreSuite struct {
	suite.Suite
}

func TestScoreSuite(t *testing.T) {
	suite.Run(t, new(ScoreSuite))
}

func (s *ScoreSuite) TestRegistrationRules() {
	s.Run("exact match is case-insensitive", func() {
		s.Equal(weightRegExact, scoreRegistration("c123-45-678/2021", "C123-45-678/2021"))
	})

	s.Run("containment fires instead of exact", func() {
		score := scoreRegistration("C123-45-678/2021", "123-45-678")
		s.Equal(weightRegContains, score)
	})

	s.Run("exact and containment never stack", func() {
		s.Equal(weightRegExact, scoreRegistration("C1/2/3", "c1/2/3"))
	})

	s.Run("empty side contributes nothing", func() {
		s.Equal(0, scoreRegistration("", "C123-45-678/2021"))
		s.Equal(0, scoreRegistration("C123-45-678/2021", ""))
	})
}

func (s *ScoreSuite) TestNameRules() {
	s.Run("exact normalized match", func() {
		s.Equal(weightNameExact, scoreName("Mr John Smith", "JOHN SMITH"))
	})

	s.Run("containment", func() {
		s.Equal(weightNameContains, scoreName("John Smith", "JOHN SMITH MWANGI"))
	})

	s.Run("similarity above floor", func() {
		// one substitution in ten characters, similarity 0.9
		s.Equal(weightNameSimilar, scoreName("john smith", "john smyth"))
	})

	s.Run("dissimilar names contribute nothing", func() {
		s.Equal(0, scoreName("John Smith", "Peter Otieno Kamau"))
	})
}

func (s *ScoreSuite) TestSegmentRules() {
	s.Run("first segment stacks with third", func() {
		got := scoreRegistrationSegments("C123/45/2021", "C123/99/2021")
		s.Equal(weightRegFirstPart+weightRegThirdPart, got)
	})

	s.Run("single-slash registrations only expose the first segment", func() {
		got := scoreRegistrationSegments("C123-45-678/2021", "C123-45-678/1999")
		s.Equal(weightRegFirstPart, got)
	})

	s.Run("segment comparison is case-sensitive", func() {
		got := scoreRegistrationSegments("c123/45/2021", "C123/45/2021")
		s.Equal(weightRegThirdPart, got)
	})
}

func (s *ScoreSuite) TestClampAndRange() {
	s.Run("exact registration and exact name clamp to 100", func() {
		score := Score(
			ClaimedIdentity{RegistrationNumber: "C123-45-678/2021", FullName: "John Smith"},
			ExtractedIdentity{RegistrationNumber: "C123-45-678/2021", Name: "JOHN SMITH"},
		)
		s.Equal(100, score)
	})

	s.Run("no evidence scores zero", func() {
		score := Score(
			ClaimedIdentity{RegistrationNumber: "C123-45-678/2021", FullName: "John Smith"},
			ExtractedIdentity{},
		)
		s.Equal(0, score)
	})

	s.Run("score never leaves the range", func() {
		inputs := []ExtractedIdentity{
			{},
			{Name: "JOHN SMITH"},
			{RegistrationNumber: "C123-45-678/2021"},
			{Name: "JOHN SMITH MWANGI", RegistrationNumber: "C123-45-678/2021"},
		}
		claimed := ClaimedIdentity{RegistrationNumber: "C123-45-678/2021", FullName: "John Smith"}
		for _, found := range inputs {
			score := Score(claimed, found)
			s.GreaterOrEqual(score, 0)
			s.LessOrEqual(score, 100)
		}
	})
}

func (s *ScoreSuite) TestConfidenceBoundaries() {
	cases := []struct {
		score int
		want  Confidence
	}{
		{80, ConfidenceVeryHigh},
		{79, ConfidenceHigh},
		{60, ConfidenceHigh},
		{59, ConfidenceMedium},
		{40, ConfidenceMedium},
		{39, ConfidenceLow},
		{20, ConfidenceLow},
		{19, ConfidenceVeryLow},
		{0, ConfidenceVeryLow},
	}
	for _, tc := range cases {
		s.Equal(tc.want, ConfidenceFor(tc.score), "score %d", tc.score)
	}
}

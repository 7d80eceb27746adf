// Package matching scores claimed lost identities against identities
// extracted from found ID cards and manages match confirmation. Scoring is
// an additive evidence model: each agreement pattern between the two sides
// contributes independently and the sum is clamped to 100.
package matching

import (
	dErrors "reclaim/pkg/domain-errors"
)

// ClaimedIdentity is the registration number and name a student self-reports
// when describing a lost ID. Immutable for the duration of a matching attempt.
type ClaimedIdentity struct {
	RegistrationNumber string
	FullName           string
}

// ExtractedIdentity is the best-guess identity recovered from OCR text of a
// found ID. Empty fields mean the extractor found no acceptable candidate.
type ExtractedIdentity struct {
	Name               string
	RegistrationNumber string
}

// Confidence is the qualitative label derived from a numeric match score.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "Very High"
	ConfidenceHigh     Confidence = "High"
	ConfidenceMedium   Confidence = "Medium"
	ConfidenceLow      Confidence = "Low"
	ConfidenceVeryLow  Confidence = "Very Low"
)

// ConfidenceFor maps a match score to its confidence label. Thresholds are
// evaluated high to low and do not overlap.
func ConfidenceFor(score int) Confidence {
	switch {
	case score >= 80:
		return ConfidenceVeryHigh
	case score >= 60:
		return ConfidenceHigh
	case score >= 40:
		return ConfidenceMedium
	case score >= 20:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// CandidateMatch is one ranked entry in a match search result. It is
// ephemeral: produced fresh per FindMatches call and never persisted.
type CandidateMatch struct {
	FoundItemID        string
	ExtractedName      string
	ExtractedAdmission string
	Score              int
	Confidence         Confidence
}

// ConfirmRequest names the three records linked by a confirmed match.
type ConfirmRequest struct {
	FoundItemID string
	LostItemID  string
	StudentID   string
}

// Validate rejects requests with missing identifiers at the trust boundary.
func (r ConfirmRequest) Validate() error {
	if r.FoundItemID == "" || r.LostItemID == "" || r.StudentID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "foundItemId, lostItemId and studentId are required")
	}
	return nil
}

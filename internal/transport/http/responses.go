package httptransport

import (
	"reclaim/internal/lostfound"
	"reclaim/internal/matching"
)

type StudentResponse struct {
	ID        string `json:"id"`
	RegNumber string `json:"regNumber"`
	FullName  string `json:"fullName"`
	HasLostID bool   `json:"hasLostID"`
	IDFound   bool   `json:"idFound"`
}

func toStudentResponse(s *lostfound.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		RegNumber: s.RegNumber,
		FullName:  s.FullName,
		HasLostID: s.HasLostID,
		IDFound:   s.IDFound,
	}
}

type LostItemResponse struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registrationNumber"`
	StudentID          string `json:"studentId"`
	Found              bool   `json:"found"`
}

func toLostItemResponse(l *lostfound.LostItem) LostItemResponse {
	return LostItemResponse{
		ID:                 l.ID,
		RegistrationNumber: l.RegistrationNumber,
		StudentID:          l.StudentID,
		Found:              l.Found,
	}
}

type FoundItemResponse struct {
	ID                 string `json:"id"`
	ExtractedName      string `json:"extractedName,omitempty"`
	ExtractedAdmission string `json:"extractedAdmission,omitempty"`
	Matched            bool   `json:"matched"`
	LocationFound      string `json:"locationFound,omitempty"`
}

func toFoundItemResponse(f *lostfound.FoundItem) FoundItemResponse {
	return FoundItemResponse{
		ID:                 f.ID,
		ExtractedName:      f.ExtractedName,
		ExtractedAdmission: f.ExtractedAdmission,
		Matched:            f.Matched,
		LocationFound:      f.LocationFound,
	}
}

type MatchResponse struct {
	FoundItemID        string `json:"foundItemId"`
	ExtractedName      string `json:"extractedName,omitempty"`
	ExtractedAdmission string `json:"extractedAdmission,omitempty"`
	MatchScore         int    `json:"matchScore"`
	MatchConfidence    string `json:"matchConfidence"`
}

func toMatchesResponse(matches []matching.CandidateMatch) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchResponse{
			FoundItemID:        m.FoundItemID,
			ExtractedName:      m.ExtractedName,
			ExtractedAdmission: m.ExtractedAdmission,
			MatchScore:         m.Score,
			MatchConfidence:    string(m.Confidence),
		})
	}
	return out
}

type ConfirmMatchResponse struct {
	Confirmed bool `json:"confirmed"`
}

type StatisticsResponse struct {
	TotalLost    int     `json:"totalLost"`
	TotalFound   int     `json:"totalFound"`
	TotalMatched int     `json:"totalMatched"`
	SuccessRate  float64 `json:"successRate"`
}

func toStatisticsResponse(s lostfound.Statistics) StatisticsResponse {
	return StatisticsResponse{
		TotalLost:    s.TotalLost,
		TotalFound:   s.TotalFound,
		TotalMatched: s.TotalMatched,
		SuccessRate:  s.SuccessRate,
	}
}

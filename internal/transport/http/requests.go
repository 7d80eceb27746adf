package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type RegisterStudentRequest struct {
	RegNumber string `json:"regNumber"`
	FullName  string `json:"fullName"`
}

type ReportLostRequest struct {
	StudentID string `json:"studentId"`
}

type SubmitFoundRequest struct {
	FinderName      string   `json:"finderName"`
	FinderPhone     string   `json:"finderPhone"`
	LocationFound   string   `json:"locationFound"`
	AdditionalNotes string   `json:"additionalNotes"`
	RawTexts        []string `json:"rawTexts"`
}

type ConfirmMatchRequest struct {
	FoundItemID string `json:"foundItemId"`
	LostItemID  string `json:"lostItemId"`
	StudentID   string `json:"studentId"`
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// Package httptransport is the thin HTTP layer. Handlers delegate to the
// domain services without embedding business logic so transport concerns
// stay isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"reclaim/internal/lostfound"
	"reclaim/internal/matching"
	"reclaim/internal/platform/middleware"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/httputil"
)

type Handler struct {
	matcher *matching.Service
	records *lostfound.Service
	logger  *slog.Logger
}

func NewHandler(matcher *matching.Service, records *lostfound.Service, logger *slog.Logger) *Handler {
	return &Handler{matcher: matcher, records: records, logger: logger}
}

// HandleRegisterStudent creates a student profile.
func (h *Handler) HandleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[RegisterStudentRequest](w, r)
	if !ok {
		return
	}

	student, err := h.records.RegisterStudent(ctx, req.RegNumber, req.FullName)
	if err != nil {
		h.logError(r, "register student failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toStudentResponse(student))
}

// HandleReportLost records a lost-ID claim.
func (h *Handler) HandleReportLost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[ReportLostRequest](w, r)
	if !ok {
		return
	}

	item, err := h.records.ReportLost(ctx, req.StudentID)
	if err != nil {
		h.logError(r, "report lost failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toLostItemResponse(item))
}

// HandleSubmitFound stores a finder's upload. The raw OCR texts arrive with
// the submission; extraction runs before the record is stored.
func (h *Handler) HandleSubmitFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[SubmitFoundRequest](w, r)
	if !ok {
		return
	}

	item, err := h.records.SubmitFound(ctx, lostfound.FoundSubmission{
		FinderName:      req.FinderName,
		FinderPhone:     req.FinderPhone,
		LocationFound:   req.LocationFound,
		AdditionalNotes: req.AdditionalNotes,
		RawTexts:        req.RawTexts,
	})
	if err != nil {
		h.logError(r, "submit found failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toFoundItemResponse(item))
}

// HandleFindMatches runs a match search for a claimed identity. The search
// itself never fails; an unreachable store shows up as an empty list.
func (h *Handler) HandleFindMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claimed := matching.ClaimedIdentity{
		RegistrationNumber: r.URL.Query().Get("registrationNumber"),
		FullName:           r.URL.Query().Get("fullName"),
	}
	if claimed.RegistrationNumber == "" && claimed.FullName == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "registrationNumber or fullName is required"))
		return
	}

	matches := h.matcher.FindMatches(ctx, claimed)
	httputil.WriteJSON(w, http.StatusOK, toMatchesResponse(matches))
}

// HandleStudentMatches lists the found items already matched to a student.
func (h *Handler) HandleStudentMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := urlParam(r, "id")

	items, err := h.records.MatchesForStudent(ctx, studentID)
	if err != nil {
		h.logError(r, "student matches failed", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]FoundItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toFoundItemResponse(&items[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleConfirmMatch applies the three-way confirmation.
func (h *Handler) HandleConfirmMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[ConfirmMatchRequest](w, r)
	if !ok {
		return
	}

	err := h.matcher.ConfirmMatch(ctx, matching.ConfirmRequest{
		FoundItemID: req.FoundItemID,
		LostItemID:  req.LostItemID,
		StudentID:   req.StudentID,
	})
	if err != nil {
		h.logError(r, "confirm match failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ConfirmMatchResponse{Confirmed: true})
}

// HandleStatistics returns pipeline totals for the dashboard.
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.records.Statistics(r.Context())
	if err != nil {
		h.logError(r, "statistics failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStatisticsResponse(stats))
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	if h.logger == nil {
		return
	}
	ctx := r.Context()
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", middleware.GetRequestID(ctx),
	)
}

package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"reclaim/internal/lostfound"
	"reclaim/internal/matching"
	"reclaim/internal/store"
)

// HandlerSuite drives the public API end to end against the in-memory store:
// register, report, submit, search, confirm, stats.
type HandlerSuite struct {
	suite.Suite
	docs   *store.InMemory
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.docs = store.NewInMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	seq := 0
	matcher := matching.New(s.docs, matching.WithLogger(log))
	records := lostfound.NewService(s.docs,
		lostfound.WithLogger(log),
		lostfound.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	s.router = NewRouter(NewHandler(matcher, records, log), log)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](s *HandlerSuite, rec *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) TestFullReuniteFlow() {
	rec := s.do(http.MethodPost, "/students", RegisterStudentRequest{
		RegNumber: "C123-45-678/2021",
		FullName:  "John Smith",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	student := decodeBody[StudentResponse](s, rec)

	rec = s.do(http.MethodPost, "/lost-items", ReportLostRequest{StudentID: student.ID})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	lost := decodeBody[LostItemResponse](s, rec)
	s.Equal(student.ID, lost.StudentID)

	rec = s.do(http.MethodPost, "/found-items", SubmitFoundRequest{
		FinderName: "Grace Njeri",
		RawTexts:   []string{"REG NO: C123-45-678/2021\nJOHN SMITH MWANGI"},
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	found := decodeBody[FoundItemResponse](s, rec)
	s.Equal("C123-45-678/2021", found.ExtractedAdmission)

	rec = s.do(http.MethodGet, "/matches?registrationNumber=C123-45-678%2F2021&fullName=John+Smith", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	matches := decodeBody[[]MatchResponse](s, rec)
	s.Require().NotEmpty(matches)
	s.Equal(found.ID, matches[0].FoundItemID)
	s.GreaterOrEqual(matches[0].MatchScore, 80)
	s.Equal("Very High", matches[0].MatchConfidence)

	rec = s.do(http.MethodPost, "/matches/confirm", ConfirmMatchRequest{
		FoundItemID: found.ID,
		LostItemID:  lost.ID,
		StudentID:   student.ID,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.True(decodeBody[ConfirmMatchResponse](s, rec).Confirmed)

	rec = s.do(http.MethodGet, "/students/"+student.ID+"/matches", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	mine := decodeBody[[]FoundItemResponse](s, rec)
	s.Require().Len(mine, 1)
	s.Equal(found.ID, mine[0].ID)
	s.True(mine[0].Matched)

	rec = s.do(http.MethodGet, "/stats", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	stats := decodeBody[StatisticsResponse](s, rec)
	s.Equal(1, stats.TotalLost)
	s.Equal(1, stats.TotalFound)
	s.Equal(1, stats.TotalMatched)
	s.InDelta(100.0, stats.SuccessRate, 1e-9)
}

func (s *HandlerSuite) TestFindMatchesRequiresAQuery() {
	rec := s.do(http.MethodGet, "/matches", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestConfirmMatchConflictsMapTo409() {
	rec := s.do(http.MethodPost, "/students", RegisterStudentRequest{
		RegNumber: "C123-45-678/2021",
		FullName:  "John Smith",
	})
	student := decodeBody[StudentResponse](s, rec)
	rec = s.do(http.MethodPost, "/lost-items", ReportLostRequest{StudentID: student.ID})
	lost := decodeBody[LostItemResponse](s, rec)
	rec = s.do(http.MethodPost, "/found-items", SubmitFoundRequest{
		FinderName: "Grace Njeri",
		RawTexts:   []string{"REG NO: C123-45-678/2021"},
	})
	found := decodeBody[FoundItemResponse](s, rec)

	confirm := ConfirmMatchRequest{FoundItemID: found.ID, LostItemID: lost.ID, StudentID: student.ID}
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/matches/confirm", confirm).Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/matches/confirm", confirm).Code)
}

func (s *HandlerSuite) TestUnknownStudentMapsTo404() {
	rec := s.do(http.MethodPost, "/lost-items", ReportLostRequest{StudentID: "ghost"})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestMalformedBodyMapsTo400() {
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", rec.Body.String())
}

package timeentry_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"

	"github.com/apontae/timesheet-management/internal/auth"
	"github.com/apontae/timesheet-management/internal/timeentry"
)

// Mock service API for handler tests
type mockEntryService struct {
	entries []*timeentry.TimeEntry
	entry   *timeentry.TimeEntry
}

func (m *mockEntryService) CreateEntry(userID int64, dto timeentry.CreateTimeEntryDTO) (*timeentry.TimeEntry, error) {
	return m.entry, nil
}

func (m *mockEntryService) UpdateHours(entryID, userID int64, dto timeentry.UpdateHoursDTO) (*timeentry.TimeEntry, error) {
	return m.entry, nil
}

func (m *mockEntryService) SubmitEntry(entryID, userID int64) (*timeentry.TimeEntry, error) {
	return m.entry, nil
}

func (m *mockEntryService) ApproveEntry(entryID, reviewerID int64) error {
	return nil
}

func (m *mockEntryService) ReturnEntryToDraft(entryID, reviewerID int64, comment string) error {
	return nil
}

func (m *mockEntryService) DeleteEntry(entryID, actorID int64, isManager bool) error {
	return nil
}

func (m *mockEntryService) GetEntry(entryID, userID int64, isManager bool) (*timeentry.TimeEntry, error) {
	return m.entry, nil
}

func (m *mockEntryService) GetUserEntries(userID int64, from, to time.Time) ([]*timeentry.TimeEntry, error) {
	return m.entries, nil
}

var _ = Describe("TimeEntryHandler", func() {
	var (
		handler *timeentry.Handler
		service *mockEntryService
		ana     *auth.User
	)

	withUser := func(r *http.Request, user *auth.User) *http.Request {
		return r.WithContext(auth.ContextWithUser(r.Context(), user))
	}

	BeforeEach(func() {
		service = &mockEntryService{}
		handler = timeentry.NewHandler(service)
		ana = &auth.User{ID: 123, Email: "ana@apontae.com.br", IsActive: true}
	})

	Describe("GetUserEntries", func() {
		It("should flag a returned-to-draft entry as needing review", func() {
			// Given one bounced draft and one fresh draft in the same week
			submitted := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
			reviewed := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
			service.entries = []*timeentry.TimeEntry{
				{
					ID:          1,
					UserID:      123,
					EntryDate:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
					Hours:       "8",
					Status:      timeentry.StatusDraft,
					SubmittedAt: &submitted,
					ReviewedAt:  &reviewed,
				},
				{
					ID:        2,
					UserID:    123,
					EntryDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
					Hours:     "4",
					Status:    timeentry.StatusDraft,
				},
			}
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/time-entries/user?fromDate=2026-03-09&toDate=2026-03-15", nil), ana)
			rec := httptest.NewRecorder()

			// When
			handler.GetUserEntries(rec, req)

			// Then the bounced draft carries the flag and the fresh one does not
			Expect(rec.Code).To(Equal(http.StatusOK))

			var payload struct {
				Entries []struct {
					ID          int64 `json:"id"`
					NeedsReview bool  `json:"needs_review"`
				} `json:"entries"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.Entries).To(HaveLen(2))
			Expect(payload.Entries[0].NeedsReview).To(BeTrue())
			Expect(payload.Entries[1].NeedsReview).To(BeFalse())
		})
	})

	Describe("GetEntry", func() {
		It("should include the review flag on a single entry", func() {
			reviewed := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
			service.entry = &timeentry.TimeEntry{
				ID:         1,
				UserID:     123,
				EntryDate:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
				Hours:      "8",
				Status:     timeentry.StatusDraft,
				ReviewedAt: &reviewed,
			}
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/time-entries/1", nil), ana)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.GetEntry(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var payload map[string]json.RawMessage
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload).To(HaveKey("needs_review"))
			Expect(string(payload["needs_review"])).To(Equal("true"))
		})
	})
})

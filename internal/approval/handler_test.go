package approval_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/apontae/timesheet-management/internal/approval"
	"github.com/apontae/timesheet-management/internal/auth"
	"github.com/apontae/timesheet-management/internal/timeentry"
	"github.com/apontae/timesheet-management/internal/timesheet"
)

// Mock service API for handler tests
type mockApprovalService struct {
	entries []*timeentry.TimeEntry
	week    timesheet.Result
}

func (m *mockApprovalService) PendingEntries(from, to time.Time) ([]*timeentry.TimeEntry, error) {
	return m.entries, nil
}

func (m *mockApprovalService) PendingWeek(from, to time.Time) (timesheet.Result, error) {
	return m.week, nil
}

func (m *mockApprovalService) UserWeek(userID int64, from, to time.Time) (timesheet.Result, error) {
	return m.week, nil
}

type mockBatch struct {
	result approval.BatchResult
	err    error

	gotAction  timeentry.Action
	gotIDs     []int64
	gotActorID int64
	gotComment string
}

func (m *mockBatch) Process(action timeentry.Action, entryIDs []int64, actorID int64, comment string) (approval.BatchResult, error) {
	m.gotAction = action
	m.gotIDs = entryIDs
	m.gotActorID = actorID
	m.gotComment = comment
	return m.result, m.err
}

type mockCounts struct {
	count int64
}

func (m *mockCounts) Count(userID int64, isManager bool) int64 {
	return m.count
}

var _ = Describe("ApprovalHandler", func() {
	var (
		handler *approval.Handler
		service *mockApprovalService
		batch   *mockBatch
		counts  *mockCounts
		manager *auth.User
	)

	withUser := func(r *http.Request, user *auth.User) *http.Request {
		return r.WithContext(auth.ContextWithUser(r.Context(), user))
	}

	BeforeEach(func() {
		service = &mockApprovalService{}
		batch = &mockBatch{}
		counts = &mockCounts{count: 3}
		handler = approval.NewHandler(service, batch, counts)
		manager = &auth.User{ID: 42, Email: "marina@apontae.com.br", IsActive: true, Permissions: []string{auth.PermissionApproveEntries}}
	})

	Describe("ProcessBatch", func() {
		It("should return 200 when every operation succeeded", func() {
			batch.result = approval.BatchResult{
				Action:    timeentry.ActionApprove,
				Outcomes:  []approval.Outcome{{EntryID: 7, Success: true}},
				Succeeded: true,
			}
			body := `{"action":"approve","entry_ids":[7]}`
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/approvals/batch", strings.NewReader(body)), manager)
			rec := httptest.NewRecorder()

			handler.ProcessBatch(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(batch.gotAction).To(Equal(timeentry.ActionApprove))
			Expect(batch.gotIDs).To(Equal([]int64{7}))
			Expect(batch.gotActorID).To(Equal(int64(42)))
		})

		It("should return 207 on partial failure with per-id outcomes", func() {
			batch.result = approval.BatchResult{
				Action: timeentry.ActionApprove,
				Outcomes: []approval.Outcome{
					{EntryID: 1, Success: true},
					{EntryID: 2, Success: false, Error: "invalid status transition"},
					{EntryID: 3, Success: true},
				},
				Succeeded: false,
			}
			body := `{"action":"approve","entry_ids":[1,2,3]}`
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/approvals/batch", strings.NewReader(body)), manager)
			rec := httptest.NewRecorder()

			handler.ProcessBatch(rec, req)

			Expect(rec.Code).To(Equal(http.StatusMultiStatus))

			var payload approval.BatchResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.Outcomes).To(HaveLen(3))
			Expect(payload.Succeeded).To(BeFalse())
		})

		It("should reject an unsupported action before touching the processor", func() {
			body := `{"action":"submit","entry_ids":[1]}`
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/approvals/batch", strings.NewReader(body)), manager)
			rec := httptest.NewRecorder()

			handler.ProcessBatch(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(batch.gotIDs).To(BeNil())
		})

		It("should reject an empty id list", func() {
			body := `{"action":"approve","entry_ids":[]}`
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/approvals/batch", strings.NewReader(body)), manager)
			rec := httptest.NewRecorder()

			handler.ProcessBatch(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should require an authenticated user", func() {
			body := `{"action":"approve","entry_ids":[1]}`
			req := httptest.NewRequest(http.MethodPost, "/api/approvals/batch", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ProcessBatch(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GetValidationCount", func() {
		It("should return the badge count", func() {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/time-entries/validation-count", nil), manager)
			rec := httptest.NewRecorder()

			handler.GetValidationCount(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var payload approval.ValidationCountResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.Count).To(Equal(int64(3)))
		})
	})

	Describe("GetPending", func() {
		It("should default the window to the current week and return both views", func() {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/approvals/pending", nil), manager)
			rec := httptest.NewRecorder()

			handler.GetPending(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var payload map[string]json.RawMessage
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload).To(HaveKey("entries"))
			Expect(payload).To(HaveKey("week"))
			Expect(payload).To(HaveKey("from_date"))
			Expect(payload).To(HaveKey("to_date"))
		})

		It("should serialize entries with the derived review flag", func() {
			reviewed := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
			service.entries = []*timeentry.TimeEntry{
				{ID: 1, UserID: 7, Hours: "8", Status: timeentry.StatusDraft, ReviewedAt: &reviewed},
				{ID: 2, UserID: 7, Hours: "4", Status: timeentry.StatusPendingReview},
			}
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/approvals/pending", nil), manager)
			rec := httptest.NewRecorder()

			handler.GetPending(rec, req)

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

		It("should reject a malformed window", func() {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/approvals/pending?fromDate=banana", nil), manager)
			rec := httptest.NewRecorder()

			handler.GetPending(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

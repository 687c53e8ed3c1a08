package approval_test

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/apontae/timesheet-management/internal/approval"
	"github.com/apontae/timesheet-management/internal/cache"
	"github.com/apontae/timesheet-management/internal/timeentry"
	"github.com/apontae/timesheet-management/internal/timesheet"
)

// Mock entry source for testing
type mockEntrySource struct {
	mu           sync.Mutex
	pending      []*timeentry.TimeEntry
	userEntries  []*timeentry.TimeEntry
	pendingError error
	pendingCalls int
}

func (m *mockEntrySource) GetPendingEntries(from, to time.Time) ([]*timeentry.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingCalls++
	if m.pendingError != nil {
		return nil, m.pendingError
	}
	return m.pending, nil
}

func (m *mockEntrySource) GetUserEntries(userID int64, from, to time.Time) ([]*timeentry.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userEntries, nil
}

func pendingEntry(id int64, date string, hours string) *timeentry.TimeEntry {
	parsed, err := timesheet.ParseDate(date)
	Expect(err).ToNot(HaveOccurred())
	clientID, campaignID, taskID := int64(10), int64(20), int64(30)
	return &timeentry.TimeEntry{
		ID:              id,
		UserID:          1,
		EntryDate:       parsed,
		Hours:           hours,
		Status:          timeentry.StatusPendingReview,
		ClientID:        &clientID,
		CampaignID:      &campaignID,
		CampaignTaskID:  &taskID,
		ClientTradeName: "Acme",
		CampaignName:    "Lançamento Verão",
		TaskDescription: "Planejamento de mídia",
		UserFirstName:   "Ana",
		UserLastName:    "Souza",
	}
}

var _ = Describe("ApprovalService", func() {
	var (
		service *approval.Service
		source  *mockEntrySource
		store   cache.Store
		logger  *slog.Logger
		from    time.Time
		to      time.Time
	)

	BeforeEach(func() {
		source = &mockEntrySource{}
		store = cache.NewLRUStore(16, time.Minute)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = approval.NewService(source, store, logger)
		from = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		to = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	})

	Describe("PendingEntries", func() {
		It("should serve the second identical query from cache", func() {
			source.pending = []*timeentry.TimeEntry{pendingEntry(1, "2026-03-09", "8")}

			first, err := service.PendingEntries(from, to)
			Expect(err).ToNot(HaveOccurred())
			Expect(first).To(HaveLen(1))

			second, err := service.PendingEntries(from, to)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(HaveLen(1))
			Expect(source.pendingCalls).To(Equal(1))
		})

		It("should recompute after the base key is invalidated", func() {
			source.pending = []*timeentry.TimeEntry{pendingEntry(1, "2026-03-09", "8")}
			_, err := service.PendingEntries(from, to)
			Expect(err).ToNot(HaveOccurred())

			// Invalidating the base key wipes the per-window variant too.
			store.Invalidate(cache.KeyPending)

			_, err = service.PendingEntries(from, to)
			Expect(err).ToNot(HaveOccurred())
			Expect(source.pendingCalls).To(Equal(2))
		})

		It("should cache different windows separately", func() {
			source.pending = []*timeentry.TimeEntry{pendingEntry(1, "2026-03-09", "8")}
			_, err := service.PendingEntries(from, to)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.PendingEntries(from.AddDate(0, 0, 7), to.AddDate(0, 0, 7))
			Expect(err).ToNot(HaveOccurred())
			Expect(source.pendingCalls).To(Equal(2))
		})

		It("should propagate source errors without caching them", func() {
			source.pendingError = errors.New("db down")

			_, err := service.PendingEntries(from, to)
			Expect(err).To(HaveOccurred())

			source.pendingError = nil
			source.pending = []*timeentry.TimeEntry{pendingEntry(1, "2026-03-09", "8")}
			entries, err := service.PendingEntries(from, to)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})

	Describe("PendingWeek", func() {
		It("should aggregate with the collaborators column", func() {
			source.pending = []*timeentry.TimeEntry{
				pendingEntry(1, "2026-03-09", "2"),
				pendingEntry(2, "2026-03-10", "1.5"),
			}

			result, err := service.PendingWeek(from, to)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Lines).To(HaveLen(1))
			Expect(result.Lines[0].Collaborators).To(Equal("Ana Souza"))
			Expect(result.GrandTotal.Equal(decimal.RequireFromString("3.5"))).To(BeTrue())
		})

		It("should cache the aggregation under its own key", func() {
			source.pending = []*timeentry.TimeEntry{pendingEntry(1, "2026-03-09", "2")}

			_, err := service.PendingWeek(from, to)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.PendingWeek(from, to)
			Expect(err).ToNot(HaveOccurred())

			Expect(source.pendingCalls).To(Equal(1))
		})
	})

	Describe("UserWeek", func() {
		It("should aggregate without the collaborators column", func() {
			source.userEntries = []*timeentry.TimeEntry{pendingEntry(1, "2026-03-09", "4")}

			result, err := service.UserWeek(1, from, to)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Lines).To(HaveLen(1))
			Expect(result.Lines[0].Collaborators).To(BeEmpty())
		})
	})

	Describe("ToAggregationEntries", func() {
		It("should flatten missing assignment ids to zero", func() {
			entry := pendingEntry(1, "2026-03-09", "4")
			entry.CampaignTaskID = nil

			flat := approval.ToAggregationEntries([]*timeentry.TimeEntry{entry})

			Expect(flat).To(HaveLen(1))
			Expect(flat[0].CampaignTaskID).To(Equal(int64(0)))

			result := timesheet.Aggregate(flat, timesheet.Options{})
			Expect(result.Lines).To(BeEmpty())
		})
	})
})

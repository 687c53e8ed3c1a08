package approval_test

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/apontae/timesheet-management/internal/approval"
)

// Mock count source for testing
type mockCountSource struct {
	mu         sync.Mutex
	count      int64
	countError error
	calls      int
}

func (m *mockCountSource) CountPending(userID int64, isManager bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.countError != nil {
		return 0, m.countError
	}
	return m.count, nil
}

func (m *mockCountSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockCountSource) set(count int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count = count
	m.countError = err
}

var _ = Describe("CountService", func() {
	var (
		service *approval.CountService
		source  *mockCountSource
		logger  *slog.Logger
	)

	BeforeEach(func() {
		source = &mockCountSource{count: 5}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = approval.NewCountService(source, 30*time.Second, time.Minute, logger)
	})

	Context("fetching", func() {
		It("should return the source count on first call", func() {
			Expect(service.Count(42, true)).To(Equal(int64(5)))
			Expect(source.callCount()).To(Equal(1))
		})

		It("should serve the cached sample while it is fresh", func() {
			Expect(service.Count(42, true)).To(Equal(int64(5)))
			source.set(9, nil)

			// Second call inside the staleness window must not hit the source.
			Expect(service.Count(42, true)).To(Equal(int64(5)))
			Expect(source.callCount()).To(Equal(1))
		})

		It("should track managers and collaborators separately", func() {
			source.set(5, nil)
			Expect(service.Count(42, true)).To(Equal(int64(5)))

			source.set(2, nil)
			Expect(service.Count(42, false)).To(Equal(int64(2)))
			Expect(source.callCount()).To(Equal(2))
		})
	})

	Context("failure handling", func() {
		It("should degrade to zero when the source fails", func() {
			source.set(0, errors.New("connection refused"))

			Expect(service.Count(42, true)).To(Equal(int64(0)))
		})

		It("should not poison the cache with a failed fetch", func() {
			source.set(0, errors.New("connection refused"))
			Expect(service.Count(42, true)).To(Equal(int64(0)))

			// Source recovers; the next call should fetch again, not serve 0.
			source.set(7, nil)
			Expect(service.Count(42, true)).To(Equal(int64(7)))
		})
	})

	Context("invalidation", func() {
		It("should force a refetch after Invalidate", func() {
			Expect(service.Count(42, true)).To(Equal(int64(5)))
			source.set(8, nil)

			service.Invalidate()

			Expect(service.Count(42, true)).To(Equal(int64(8)))
			Expect(source.callCount()).To(Equal(2))
		})
	})

	Context("staleness", func() {
		It("should refetch once the sample ages past the staleness window", func() {
			short := approval.NewCountService(source, time.Second, 20*time.Millisecond, logger)

			Expect(short.Count(42, true)).To(Equal(int64(5)))
			source.set(11, nil)

			Eventually(func() int64 {
				return short.Count(42, true)
			}, 500*time.Millisecond, 25*time.Millisecond).Should(Equal(int64(11)))
		})
	})
})

package approval

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CountSource answers how many entries are awaiting a decision for an actor.
type CountSource interface {
	CountPending(userID int64, isManager bool) (int64, error)
}

type countKey struct {
	userID  int64
	manager bool
}

type countSample struct {
	value     int64
	fetchedAt time.Time
}

// CountService serves the "entries awaiting my decision" badge. The value is
// non-critical: any transport failure degrades to 0 instead of an error, and
// a cached sample up to staleTime old is considered good enough.
type CountService struct {
	source    CountSource
	interval  time.Duration
	staleTime time.Duration
	logger    *slog.Logger

	mu      sync.RWMutex
	samples map[countKey]countSample
}

func NewCountService(source CountSource, interval, staleTime time.Duration, logger *slog.Logger) *CountService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if staleTime <= 0 {
		staleTime = time.Minute
	}
	return &CountService{
		source:    source,
		interval:  interval,
		staleTime: staleTime,
		logger:    logger,
		samples:   make(map[countKey]countSample),
	}
}

// Count returns the pending count for an actor, serving a fresh-enough cached
// sample when one exists. On failure it returns 0, never an error.
func (s *CountService) Count(userID int64, isManager bool) int64 {
	key := countKey{userID: userID, manager: isManager}

	s.mu.RLock()
	sample, ok := s.samples[key]
	s.mu.RUnlock()

	if ok && time.Since(sample.fetchedAt) < s.staleTime {
		return sample.value
	}

	return s.refresh(key)
}

// Invalidate drops every cached sample so the next Count hits the source.
func (s *CountService) Invalidate() {
	s.mu.Lock()
	s.samples = make(map[countKey]countSample)
	s.mu.Unlock()
}

// Start runs the polling loop, refreshing every tracked actor's count on the
// configured interval until ctx is cancelled.
func (s *CountService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("validation count poller stopped")
				return
			case <-ticker.C:
				s.refreshAll()
			}
		}
	}()
}

func (s *CountService) refresh(key countKey) int64 {
	value, err := s.source.CountPending(key.userID, key.manager)
	if err != nil {
		s.logger.Warn("validation count fetch failed, serving zero",
			"error", err,
			"user_id", key.userID,
			"manager", key.manager)
		return 0
	}

	s.mu.Lock()
	s.samples[key] = countSample{value: value, fetchedAt: time.Now()}
	s.mu.Unlock()

	return value
}

func (s *CountService) refreshAll() {
	s.mu.RLock()
	keys := make([]countKey, 0, len(s.samples))
	for key := range s.samples {
		keys = append(keys, key)
	}
	s.mu.RUnlock()

	for _, key := range keys {
		s.refresh(key)
	}
}

package approval

import (
	"log/slog"
	"sync"

	"github.com/apontae/timesheet-management/internal"
	"github.com/apontae/timesheet-management/internal/cache"
	"github.com/apontae/timesheet-management/internal/timeentry"
)

// EntryTransitioner is the per-entry persistence collaborator the batch
// processor fans out against.
type EntryTransitioner interface {
	ApproveEntry(entryID, reviewerID int64) error
	ReturnEntryToDraft(entryID, reviewerID int64, comment string) error
	DeleteEntry(entryID, actorID int64, isManager bool) error
}

// Invalidator drops derived query views after mutations.
type Invalidator interface {
	Invalidate(key cache.Key) int
}

// CountInvalidator drops the cached validation count samples so the badge
// recomputes from fresh data.
type CountInvalidator interface {
	Invalidate()
}

// Outcome is the result of one per-entry operation inside a batch.
type Outcome struct {
	EntryID int64  `json:"entry_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	err error
}

func (o Outcome) Err() error {
	return o.err
}

// BatchResult reports a best-effort batch: one outcome per id plus an
// aggregate flag. Succeeded is true only when every operation succeeded;
// completed sub-operations are never rolled back, so a failed batch may
// still have changed state server-side. Callers reconcile by re-fetching.
type BatchResult struct {
	Action    timeentry.Action `json:"action"`
	Outcomes  []Outcome        `json:"outcomes"`
	Succeeded bool             `json:"succeeded"`
}

func (r BatchResult) FailedIDs() []int64 {
	var failed []int64
	for _, o := range r.Outcomes {
		if !o.Success {
			failed = append(failed, o.EntryID)
		}
	}
	return failed
}

// BatchProcessor drives bulk approve / return-to-draft / delete operations.
type BatchProcessor struct {
	entries     EntryTransitioner
	invalidator Invalidator
	counts      CountInvalidator
	logger      *slog.Logger
}

func NewBatchProcessor(entries EntryTransitioner, invalidator Invalidator, counts CountInvalidator, logger *slog.Logger) *BatchProcessor {
	return &BatchProcessor{
		entries:     entries,
		invalidator: invalidator,
		counts:      counts,
		logger:      logger,
	}
}

// Process issues one operation per entry id concurrently and waits for all
// of them to settle. Whatever the outcome, the three derived query views and
// the cached count samples are invalidated so dependent aggregations
// recompute from fresh data.
func (p *BatchProcessor) Process(action timeentry.Action, entryIDs []int64, actorID int64, comment string) (BatchResult, error) {
	switch action {
	case timeentry.ActionApprove, timeentry.ActionReturnToDraft, timeentry.ActionDelete:
	default:
		return BatchResult{}, internal.NewValidationError("unsupported batch action", internal.ErrCodeValidationFailed)
	}

	result := BatchResult{
		Action:   action,
		Outcomes: make([]Outcome, len(entryIDs)),
	}

	var wg sync.WaitGroup
	for i, entryID := range entryIDs {
		wg.Add(1)
		go func(i int, entryID int64) {
			defer wg.Done()
			err := p.apply(action, entryID, actorID, comment)
			outcome := Outcome{EntryID: entryID, Success: err == nil, err: err}
			if err != nil {
				outcome.Error = err.Error()
			}
			result.Outcomes[i] = outcome
		}(i, entryID)
	}
	wg.Wait()

	result.Succeeded = len(result.FailedIDs()) == 0

	p.invalidateDerivedViews()

	if result.Succeeded {
		p.logger.Info("batch transition completed",
			"action", action,
			"entry_count", len(entryIDs),
			"actor_id", actorID)
	} else {
		p.logger.Warn("batch transition partially failed",
			"action", action,
			"entry_count", len(entryIDs),
			"failed_ids", result.FailedIDs(),
			"actor_id", actorID)
	}

	return result, nil
}

func (p *BatchProcessor) apply(action timeentry.Action, entryID, actorID int64, comment string) error {
	switch action {
	case timeentry.ActionApprove:
		return p.entries.ApproveEntry(entryID, actorID)
	case timeentry.ActionReturnToDraft:
		return p.entries.ReturnEntryToDraft(entryID, actorID, comment)
	case timeentry.ActionDelete:
		return p.entries.DeleteEntry(entryID, actorID, true)
	}
	return internal.ErrInvalidTransition
}

func (p *BatchProcessor) invalidateDerivedViews() {
	for _, key := range []cache.Key{cache.KeyPendingByWeek, cache.KeyPending, cache.KeyValidationCount} {
		p.invalidator.Invalidate(key)
	}
	// count samples live outside the query store, drop them too
	if p.counts != nil {
		p.counts.Invalidate()
	}
}

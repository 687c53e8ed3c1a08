package approval

import (
	"log/slog"
	"time"

	"github.com/apontae/timesheet-management/internal/cache"
	"github.com/apontae/timesheet-management/internal/timeentry"
	"github.com/apontae/timesheet-management/internal/timesheet"
)

// EntrySource provides the flat entry collections the approval views derive
// from.
type EntrySource interface {
	GetPendingEntries(from, to time.Time) ([]*timeentry.TimeEntry, error)
	GetUserEntries(userID int64, from, to time.Time) ([]*timeentry.TimeEntry, error)
}

// Service derives the manager-facing approval views: the flat pending list
// and the weekly aggregation. Both are cached under typed keys and dropped
// on every mutation.
type Service struct {
	entries EntrySource
	store   cache.Store
	logger  *slog.Logger
}

func NewService(entries EntrySource, store cache.Store, logger *slog.Logger) *Service {
	return &Service{
		entries: entries,
		store:   store,
		logger:  logger,
	}
}

// PendingEntries returns the flat pending collection for a week window.
func (s *Service) PendingEntries(from, to time.Time) ([]*timeentry.TimeEntry, error) {
	key := cache.KeyPending.For(from.Format(time.DateOnly), to.Format(time.DateOnly))
	if cached, ok := s.store.Get(key); ok {
		if entries, ok := cached.([]*timeentry.TimeEntry); ok {
			return entries, nil
		}
	}

	entries, err := s.entries.GetPendingEntries(from, to)
	if err != nil {
		return nil, err
	}

	s.store.Set(key, entries)
	return entries, nil
}

// PendingWeek aggregates the pending collection into review lines, with the
// collaborators column the manager table shows.
func (s *Service) PendingWeek(from, to time.Time) (timesheet.Result, error) {
	key := cache.KeyPendingByWeek.For(from.Format(time.DateOnly), to.Format(time.DateOnly))
	if cached, ok := s.store.Get(key); ok {
		if result, ok := cached.(timesheet.Result); ok {
			return result, nil
		}
	}

	entries, err := s.entries.GetPendingEntries(from, to)
	if err != nil {
		return timesheet.Result{}, err
	}

	result := timesheet.Aggregate(ToAggregationEntries(entries), timesheet.Options{WithCollaborators: true})
	s.store.Set(key, result)
	return result, nil
}

// UserWeek aggregates one collaborator's own week. The collaborator view has
// no collaborators column.
func (s *Service) UserWeek(userID int64, from, to time.Time) (timesheet.Result, error) {
	entries, err := s.entries.GetUserEntries(userID, from, to)
	if err != nil {
		return timesheet.Result{}, err
	}
	return timesheet.Aggregate(ToAggregationEntries(entries), timesheet.Options{}), nil
}

// ToAggregationEntries flattens domain entries into the aggregator's input
// shape. Missing grouping ids flatten to zero and get excluded downstream.
func ToAggregationEntries(entries []*timeentry.TimeEntry) []timesheet.Entry {
	flat := make([]timesheet.Entry, 0, len(entries))
	for _, e := range entries {
		flat = append(flat, timesheet.Entry{
			ID:                e.ID,
			UserID:            e.UserID,
			EntryDate:         e.EntryDate,
			Hours:             e.Hours,
			Status:            string(e.Status),
			ClientID:          deref(e.ClientID),
			CampaignID:        deref(e.CampaignID),
			CampaignTaskID:    deref(e.CampaignTaskID),
			ClientTradeName:   e.ClientTradeName,
			ClientCompanyName: e.ClientCompanyName,
			CampaignName:      e.CampaignName,
			TaskDescription:   e.TaskDescription,
			UserFirstName:     e.UserFirstName,
			UserLastName:      e.UserLastName,
		})
	}
	return flat
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

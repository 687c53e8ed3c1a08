package timeentry

import (
	"context"
	"log/slog"
	"time"

	"github.com/apontae/timesheet-management/internal"
	"github.com/apontae/timesheet-management/internal/core/events"
)

// Repository defines the data access methods for time entries.
type Repository interface {
	Create(entry *TimeEntry) error
	GetByID(id int64) (*TimeEntry, error)
	GetForUser(userID int64, from, to time.Time) ([]*TimeEntry, error)
	GetByDateRange(from, to time.Time) ([]*TimeEntry, error)
	Update(entry *TimeEntry) error
	Delete(id int64) error
	CountByStatus(status Status, userID int64) (int64, error)
}

// AssignmentValidator checks that a client/campaign/task triple is
// internally consistent before an entry is written against it.
type AssignmentValidator interface {
	ValidateAssignment(clientID, campaignID, campaignTaskID *int64) error
}

// Publisher emits domain events after a successful state change.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles time entry business logic.
type Service struct {
	repo        Repository
	assignments AssignmentValidator
	publisher   Publisher
	logger      *slog.Logger
}

func NewService(repo Repository, assignments AssignmentValidator, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateEntry logs hours as a draft, a saved draft, or directly into review.
func (s *Service) CreateEntry(userID int64, dto CreateTimeEntryDTO) (*TimeEntry, error) {
	if _, err := dto.ParsedDate(); err != nil {
		s.logger.Error("time entry date invalid", "error", err, "user_id", userID)
		return nil, internal.NewValidationError("entry_date must be a calendar date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("time entry validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if err := s.assignments.ValidateAssignment(dto.ClientID, dto.CampaignID, dto.CampaignTaskID); err != nil {
		s.logger.Error("inconsistent assignment on create", "error", err, "user_id", userID)
		return nil, err
	}

	entryDate, _ := dto.ParsedDate()
	now := time.Now()

	status := StatusDraft
	if dto.Save {
		status = StatusSaved
	}

	entry := &TimeEntry{
		UserID:         userID,
		EntryDate:      entryDate,
		Hours:          dto.Hours,
		Description:    dto.Description,
		Status:         status,
		ClientID:       dto.ClientID,
		CampaignID:     dto.CampaignID,
		CampaignTaskID: dto.CampaignTaskID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if dto.Submit {
		entry.Status = StatusPendingReview
		entry.SubmittedAt = &now
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to create time entry", "error", err, "user_id", userID)
		return nil, err
	}

	if dto.Submit {
		s.publish(events.NewTimeEntrySubmitted(entry.ID, userID))
	}

	s.logger.Info("time entry created",
		"entry_id", entry.ID,
		"user_id", userID,
		"hours", entry.Hours,
		"status", entry.Status)

	return entry, nil
}

// UpdateHours edits hours/description in place. Only the owner may edit and
// only while the entry is still editable; status is left untouched.
func (s *Service) UpdateHours(entryID, userID int64, dto UpdateHoursDTO) (*TimeEntry, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidHours)
	}

	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return nil, internal.ErrEntryNotFound
	}

	if entry.UserID != userID {
		s.logger.Warn("unauthorized edit of time entry", "entry_id", entryID, "user_id", userID, "owner_id", entry.UserID)
		return nil, internal.ErrUnauthorizedAccess
	}

	if !entry.CanBeEdited() {
		s.logger.Warn("cannot edit time entry in current status",
			"entry_id", entryID,
			"current_status", entry.Status)
		return nil, internal.ErrCannotModifyEntry
	}

	entry.Hours = dto.Hours
	if dto.Description != nil {
		entry.Description = *dto.Description
	}
	entry.UpdatedAt = time.Now()

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to update time entry", "error", err, "entry_id", entryID)
		return nil, err
	}

	s.publish(events.NewTimeEntryUpdated(entry.ID, userID))
	return entry, nil
}

// SubmitEntry sends a draft entry into review.
func (s *Service) SubmitEntry(entryID, userID int64) (*TimeEntry, error) {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return nil, internal.ErrEntryNotFound
	}

	if entry.UserID != userID {
		return nil, internal.ErrUnauthorizedAccess
	}

	if err := entry.Submit(time.Now()); err != nil {
		s.logger.Warn("cannot submit time entry in current status",
			"entry_id", entryID,
			"current_status", entry.Status)
		return nil, err
	}

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to submit time entry", "error", err, "entry_id", entryID)
		return nil, err
	}

	s.publish(events.NewTimeEntrySubmitted(entry.ID, userID))
	return entry, nil
}

// ApproveEntry transitions a pending entry to approved on behalf of a manager.
func (s *Service) ApproveEntry(entryID, reviewerID int64) error {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		s.logger.Error("time entry not found for approval", "error", err, "entry_id", entryID)
		return internal.ErrEntryNotFound
	}

	if err := entry.Approve(reviewerID, time.Now()); err != nil {
		s.logger.Warn("cannot approve time entry in current status",
			"entry_id", entryID,
			"current_status", entry.Status)
		return err
	}

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to approve time entry", "error", err, "entry_id", entryID)
		return err
	}

	s.logger.Info("time entry approved", "entry_id", entryID, "reviewer_id", reviewerID)
	s.publish(events.NewTimeEntryApproved(entryID, reviewerID))
	return nil
}

// ReturnEntryToDraft bounces a pending entry back to its owner for revision.
func (s *Service) ReturnEntryToDraft(entryID, reviewerID int64, comment string) error {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		s.logger.Error("time entry not found for return", "error", err, "entry_id", entryID)
		return internal.ErrEntryNotFound
	}

	if err := entry.ReturnToDraft(reviewerID, comment, time.Now()); err != nil {
		s.logger.Warn("cannot return time entry in current status",
			"entry_id", entryID,
			"current_status", entry.Status)
		return err
	}

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to return time entry to draft", "error", err, "entry_id", entryID)
		return err
	}

	s.logger.Info("time entry returned to draft",
		"entry_id", entryID,
		"reviewer_id", reviewerID,
		"comment", comment)
	s.publish(events.NewTimeEntryReturned(entryID, reviewerID, comment))
	return nil
}

// DeleteEntry removes an entry. Owners may delete their own entries while
// not yet approved; managers may delete on behalf of a whole line.
func (s *Service) DeleteEntry(entryID, actorID int64, isManager bool) error {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return internal.ErrEntryNotFound
	}

	if !isManager && entry.UserID != actorID {
		s.logger.Warn("unauthorized delete of time entry", "entry_id", entryID, "actor_id", actorID)
		return internal.ErrUnauthorizedAccess
	}

	if !entry.CanBeDeleted() {
		s.logger.Warn("cannot delete time entry in current status",
			"entry_id", entryID,
			"current_status", entry.Status)
		return internal.ErrInvalidTransition
	}

	if err := s.repo.Delete(entryID); err != nil {
		s.logger.Error("failed to delete time entry", "error", err, "entry_id", entryID)
		return err
	}

	s.publish(events.NewTimeEntryDeleted(entryID, actorID))
	return nil
}

// GetEntry retrieves one entry with an owner/manager access check.
func (s *Service) GetEntry(entryID, userID int64, isManager bool) (*TimeEntry, error) {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return nil, internal.ErrEntryNotFound
	}
	if !isManager && entry.UserID != userID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return entry, nil
}

// GetUserEntries retrieves the acting collaborator's own entries for a window.
func (s *Service) GetUserEntries(userID int64, from, to time.Time) ([]*TimeEntry, error) {
	entries, err := s.repo.GetForUser(userID, from, to)
	if err != nil {
		s.logger.Error("failed to get user time entries", "error", err, "user_id", userID)
		return nil, err
	}
	return entries, nil
}

// GetPendingEntries fetches all entries in a window and filters to those
// awaiting review. Filtering happens here, not in the query, mirroring the
// deployed contract where the pending endpoint returns the raw window.
func (s *Service) GetPendingEntries(from, to time.Time) ([]*TimeEntry, error) {
	entries, err := s.repo.GetByDateRange(from, to)
	if err != nil {
		s.logger.Error("failed to get pending time entries", "error", err)
		return nil, err
	}

	pending := make([]*TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status == StatusPendingReview {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// CountPending returns how many entries are awaiting a decision. For a
// manager this is every pending entry; for a collaborator only their own.
func (s *Service) CountPending(userID int64, isManager bool) (int64, error) {
	scope := userID
	if isManager {
		scope = 0
	}
	count, err := s.repo.CountByStatus(StatusPendingReview, scope)
	if err != nil {
		s.logger.Error("failed to count pending time entries", "error", err, "user_id", userID)
		return 0, err
	}
	return count, nil
}

func (s *Service) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish time entry event", "error", err, "event_type", event.EventType())
	}
}

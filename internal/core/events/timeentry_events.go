package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TimeEntryUpdatedEvent   = "timeentry.updated"
	TimeEntrySubmittedEvent = "timeentry.submitted"
	TimeEntryApprovedEvent  = "timeentry.approved"
	TimeEntryReturnedEvent  = "timeentry.returned"
	TimeEntryDeletedEvent   = "timeentry.deleted"
)

func newTimeEntryEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewTimeEntryUpdated(entryID, userID int64) BaseEvent {
	return newTimeEntryEvent(TimeEntryUpdatedEvent, map[string]interface{}{
		"entry_id": entryID,
		"user_id":  userID,
	})
}

func NewTimeEntrySubmitted(entryID, userID int64) BaseEvent {
	return newTimeEntryEvent(TimeEntrySubmittedEvent, map[string]interface{}{
		"entry_id": entryID,
		"user_id":  userID,
	})
}

func NewTimeEntryApproved(entryID, reviewerID int64) BaseEvent {
	return newTimeEntryEvent(TimeEntryApprovedEvent, map[string]interface{}{
		"entry_id":    entryID,
		"reviewer_id": reviewerID,
	})
}

func NewTimeEntryReturned(entryID, reviewerID int64, comment string) BaseEvent {
	return newTimeEntryEvent(TimeEntryReturnedEvent, map[string]interface{}{
		"entry_id":    entryID,
		"reviewer_id": reviewerID,
		"comment":     comment,
	})
}

func NewTimeEntryDeleted(entryID, userID int64) BaseEvent {
	return newTimeEntryEvent(TimeEntryDeletedEvent, map[string]interface{}{
		"entry_id": entryID,
		"user_id":  userID,
	})
}

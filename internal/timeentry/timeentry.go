package timeentry

import (
	"time"

	"github.com/apontae/timesheet-management/internal"
	entryDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/timeentry"
)

// TimeEntry is one logged block of work against a client/campaign/task
// assignment. Hours are carried as an exact decimal string so no float
// drift ever reaches aggregation.
type TimeEntry struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	EntryDate      time.Time  `json:"entry_date"`
	Hours          string     `json:"hours"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	ClientID       *int64     `json:"client_id,omitempty"`
	CampaignID     *int64     `json:"campaign_id,omitempty"`
	CampaignTaskID *int64     `json:"campaign_task_id,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy     *int64     `json:"reviewed_by,omitempty"`
	ReviewComment  *string    `json:"review_comment,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	ClientCompanyName string `json:"client_company_name,omitempty"`
	ClientTradeName   string `json:"client_trade_name,omitempty"`
	CampaignName      string `json:"campaign_name,omitempty"`
	TaskDescription   string `json:"task_description,omitempty"`
	UserFirstName     string `json:"user_first_name,omitempty"`
	UserLastName      string `json:"user_last_name,omitempty"`
}

// NeedsReview reports whether a draft entry is really a rejected one bounced
// back by a manager. Returning an entry to draft deliberately leaves the old
// submitted_at/reviewed_at timestamps in place; that residue is the only
// signal separating "never submitted" from "sent back for revision".
func NeedsReview(e *TimeEntry) bool {
	if e == nil {
		return false
	}
	return e.Status == StatusDraft && (e.SubmittedAt != nil || e.ReviewedAt != nil)
}

// Submit moves a draft or saved entry into review.
func (e *TimeEntry) Submit(now time.Time) error {
	if !CanApply(ActionSubmit, e.Status) {
		return internal.ErrInvalidTransition
	}
	e.Status = StatusPendingReview
	e.SubmittedAt = &now
	e.UpdatedAt = now
	return nil
}

// Approve marks a pending entry as approved by reviewerID.
func (e *TimeEntry) Approve(reviewerID int64, now time.Time) error {
	if !CanApply(ActionApprove, e.Status) {
		return internal.ErrInvalidTransition
	}
	e.Status = StatusApproved
	e.ReviewedAt = &now
	e.ReviewedBy = &reviewerID
	e.UpdatedAt = now
	return nil
}

// ReturnToDraft bounces a pending entry back to its owner. Status goes back
// to draft but the review timestamps stay populated, which is what makes
// NeedsReview fire afterwards.
func (e *TimeEntry) ReturnToDraft(reviewerID int64, comment string, now time.Time) error {
	if !CanApply(ActionReturnToDraft, e.Status) {
		return internal.ErrInvalidTransition
	}
	e.Status = StatusDraft
	e.ReviewedAt = &now
	e.ReviewedBy = &reviewerID
	if comment != "" {
		e.ReviewComment = &comment
	}
	e.UpdatedAt = now
	return nil
}

// CanBeEdited reports whether content fields (hours, description) may change.
func (e *TimeEntry) CanBeEdited() bool {
	return CanApply(ActionEdit, e.Status)
}

// CanBeDeleted reports whether the owner may still remove the entry.
// Approved entries are immutable history.
func (e *TimeEntry) CanBeDeleted() bool {
	return CanApply(ActionDelete, e.Status)
}

func ToDataModel(e *TimeEntry) *entryDatamodel.TimeEntry {
	return &entryDatamodel.TimeEntry{
		ID:             e.ID,
		UserID:         e.UserID,
		EntryDate:      e.EntryDate,
		Hours:          e.Hours,
		Description:    e.Description,
		Status:         string(e.Status),
		ClientID:       e.ClientID,
		CampaignID:     e.CampaignID,
		CampaignTaskID: e.CampaignTaskID,
		SubmittedAt:    e.SubmittedAt,
		ReviewedAt:     e.ReviewedAt,
		ReviewedBy:     e.ReviewedBy,
		ReviewComment:  e.ReviewComment,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func FromDataModel(m *entryDatamodel.TimeEntry) *TimeEntry {
	e := &TimeEntry{
		ID:             m.ID,
		UserID:         m.UserID,
		EntryDate:      m.EntryDate,
		Hours:          m.Hours,
		Description:    m.Description,
		Status:         Status(m.Status),
		ClientID:       m.ClientID,
		CampaignID:     m.CampaignID,
		CampaignTaskID: m.CampaignTaskID,
		SubmittedAt:    m.SubmittedAt,
		ReviewedAt:     m.ReviewedAt,
		ReviewedBy:     m.ReviewedBy,
		ReviewComment:  m.ReviewComment,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.User != nil {
		e.UserFirstName = m.User.FirstName
		e.UserLastName = m.User.LastName
	}
	if m.Client != nil {
		e.ClientCompanyName = m.Client.CompanyName
		e.ClientTradeName = m.Client.TradeName
	}
	if m.Campaign != nil {
		e.CampaignName = m.Campaign.Name
	}
	if m.CampaignTask != nil {
		e.TaskDescription = m.CampaignTask.Description
	}
	return e
}

func FromDataModelSlice(models []*entryDatamodel.TimeEntry) []*TimeEntry {
	result := make([]*TimeEntry, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}

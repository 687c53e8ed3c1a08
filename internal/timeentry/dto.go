package timeentry

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const entryDateLayout = "2006-01-02"

// CreateTimeEntryDTO is the request payload for logging hours. When Submit
// is true the entry skips draft and goes straight into review.
type CreateTimeEntryDTO struct {
	EntryDate      string `json:"entry_date"`
	Hours          string `json:"hours"`
	Description    string `json:"description,omitempty"`
	ClientID       *int64 `json:"client_id,omitempty"`
	CampaignID     *int64 `json:"campaign_id,omitempty"`
	CampaignTaskID *int64 `json:"campaign_task_id,omitempty"`
	Submit         bool   `json:"submit,omitempty"`
	Save           bool   `json:"save,omitempty"`
}

func (dto CreateTimeEntryDTO) Validate() error {
	if _, err := dto.ParsedDate(); err != nil {
		return errors.New("entry_date must be a calendar date in YYYY-MM-DD format")
	}
	if err := validateHours(dto.Hours); err != nil {
		return err
	}
	if dto.Submit && dto.Save {
		return errors.New("submit and save are mutually exclusive")
	}
	return nil
}

// ParsedDate parses the entry date as a plain calendar date, deliberately
// without any timezone shift so day bucketing never drifts.
func (dto CreateTimeEntryDTO) ParsedDate() (time.Time, error) {
	return time.Parse(entryDateLayout, dto.EntryDate)
}

// UpdateHoursDTO is the PATCH payload for in-place hour edits.
type UpdateHoursDTO struct {
	Hours       string  `json:"hours"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateHoursDTO) Validate() error {
	return validateHours(dto.Hours)
}

// ReturnToDraftDTO carries the manager's revision comment.
type ReturnToDraftDTO struct {
	Comment string `json:"comment,omitempty"`
}

// EntryResponse decorates an entry with the derived review flag so callers
// can spot bounced drafts without re-deriving the residue rule themselves.
type EntryResponse struct {
	*TimeEntry
	NeedsReview bool `json:"needs_review"`
}

func NewEntryResponse(e *TimeEntry) EntryResponse {
	return EntryResponse{TimeEntry: e, NeedsReview: NeedsReview(e)}
}

func NewEntryResponses(entries []*TimeEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = NewEntryResponse(e)
	}
	return responses
}

func validateHours(hours string) error {
	if hours == "" {
		return errors.New("hours is required")
	}
	d, err := decimal.NewFromString(hours)
	if err != nil {
		return errors.New("hours must be a decimal number")
	}
	if d.IsNegative() {
		return errors.New("hours cannot be negative")
	}
	if d.GreaterThan(decimal.NewFromInt(24)) {
		return errors.New("hours cannot exceed 24 for a single day")
	}
	return nil
}

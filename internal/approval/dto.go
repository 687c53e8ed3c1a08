package approval

import (
	"errors"

	"github.com/apontae/timesheet-management/internal/timeentry"
)

// BatchRequestDTO asks for one action across a set of entries, typically all
// entries of a single aggregation line.
type BatchRequestDTO struct {
	Action   timeentry.Action `json:"action"`
	EntryIDs []int64          `json:"entry_ids"`
	Comment  string           `json:"comment,omitempty"`
}

func (dto BatchRequestDTO) Validate() error {
	switch dto.Action {
	case timeentry.ActionApprove, timeentry.ActionReturnToDraft, timeentry.ActionDelete:
	default:
		return errors.New("action must be approve, return_to_draft or delete")
	}
	if len(dto.EntryIDs) == 0 {
		return errors.New("entry_ids is required")
	}
	return nil
}

// ValidationCountResponse is the polled badge payload.
type ValidationCountResponse struct {
	Count int64 `json:"count"`
}

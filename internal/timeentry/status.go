package timeentry

// Status is the lifecycle state of a time entry. The five values map onto
// the portal labels RASCUNHO, SALVO, VALIDACAO, APROVADO and REJEITADO.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSaved         Status = "saved"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSaved, StatusPendingReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Action is a status-changing operation a caller can request on an entry.
type Action string

const (
	ActionSubmit        Action = "submit"
	ActionApprove       Action = "approve"
	ActionReturnToDraft Action = "return_to_draft"
	ActionDelete        Action = "delete"
	ActionEdit          Action = "edit"
)

func (a Action) Valid() bool {
	switch a {
	case ActionSubmit, ActionApprove, ActionReturnToDraft, ActionDelete, ActionEdit:
		return true
	}
	return false
}

// allowedFrom lists, per action, the statuses an entry must be in for the
// action to be legal. Anything else is an invalid transition and must be
// rejected before any persistence call happens.
var allowedFrom = map[Action][]Status{
	ActionSubmit:        {StatusDraft, StatusSaved, StatusRejected},
	ActionApprove:       {StatusPendingReview},
	ActionReturnToDraft: {StatusPendingReview},
	ActionDelete:        {StatusDraft, StatusSaved, StatusPendingReview, StatusRejected},
	ActionEdit:          {StatusDraft, StatusSaved, StatusRejected},
}

// CanApply reports whether action is a legal transition from status.
func CanApply(action Action, status Status) bool {
	for _, from := range allowedFrom[action] {
		if from == status {
			return true
		}
	}
	return false
}

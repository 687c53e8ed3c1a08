package approval

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/apontae/timesheet-management/internal/auth"
	"github.com/apontae/timesheet-management/internal/timeentry"
	"github.com/apontae/timesheet-management/internal/timesheet"
	"github.com/apontae/timesheet-management/internal/transport"
	"github.com/apontae/timesheet-management/pkg/logger"
)

type ServiceAPI interface {
	PendingEntries(from, to time.Time) ([]*timeentry.TimeEntry, error)
	PendingWeek(from, to time.Time) (timesheet.Result, error)
	UserWeek(userID int64, from, to time.Time) (timesheet.Result, error)
}

type BatchAPI interface {
	Process(action timeentry.Action, entryIDs []int64, actorID int64, comment string) (BatchResult, error)
}

type CountAPI interface {
	Count(userID int64, isManager bool) int64
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Batch   BatchAPI
	Counts  CountAPI
}

func NewHandler(service ServiceAPI, batch BatchAPI, counts CountAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		Batch:       batch,
		Counts:      counts,
	}
}

// GetPending returns the flat pending collection for a week window, with
// the weekly aggregation the review table renders.
func (h *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	from, to, err := timeentry.WeekWindow(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.Service.PendingEntries(from, to)
	if err != nil {
		h.Logger.Error("GetPending: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get pending entries")
		return
	}

	week, err := h.Service.PendingWeek(from, to)
	if err != nil {
		h.Logger.Error("GetPending: aggregation error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to aggregate pending entries")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries":   timeentry.NewEntryResponses(entries),
		"week":      week,
		"from_date": from.Format(time.DateOnly),
		"to_date":   to.Format(time.DateOnly),
	})
}

// ProcessBatch drives a bulk approve/return/delete across many entries.
// Partial failure is reported, not hidden: the response carries one outcome
// per entry and a 207 status when some operations failed.
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto BatchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ProcessBatch: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Batch.Process(dto.Action, dto.EntryIDs, user.ID, dto.Comment)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Succeeded {
		status = http.StatusMultiStatus
	}
	h.WriteJSON(w, status, result)
}

// GetValidationCount serves the polled badge count. Failures inside the
// count service already degrade to zero, so this never errors.
func (h *Handler) GetValidationCount(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	count := h.Counts.Count(user.ID, user.IsManager())
	h.WriteJSON(w, http.StatusOK, ValidationCountResponse{Count: count})
}

// GetUserWeek returns the collaborator-facing weekly aggregation.
func (h *Handler) GetUserWeek(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	from, to, err := timeentry.WeekWindow(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	week, err := h.Service.UserWeek(user.ID, from, to)
	if err != nil {
		h.Logger.Error("GetUserWeek: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to aggregate week")
		return
	}

	h.WriteJSON(w, http.StatusOK, week)
}

package timeentry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/apontae/timesheet-management/internal/auth"
	"github.com/apontae/timesheet-management/internal/timesheet"
	"github.com/apontae/timesheet-management/internal/transport"
	"github.com/apontae/timesheet-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateEntry(userID int64, dto CreateTimeEntryDTO) (*TimeEntry, error)
	UpdateHours(entryID, userID int64, dto UpdateHoursDTO) (*TimeEntry, error)
	SubmitEntry(entryID, userID int64) (*TimeEntry, error)
	ApproveEntry(entryID, reviewerID int64) error
	ReturnEntryToDraft(entryID, reviewerID int64, comment string) error
	DeleteEntry(entryID, actorID int64, isManager bool) error
	GetEntry(entryID, userID int64, isManager bool) (*TimeEntry, error)
	GetUserEntries(userID int64, from, to time.Time) ([]*TimeEntry, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEntry: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateEntry(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateEntry: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, NewEntryResponse(entry))
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.Service.GetEntry(entryID, user.ID, user.IsManager())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewEntryResponse(entry))
}

// GetUserEntries returns the acting collaborator's own week.
func (h *Handler) GetUserEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	from, to, err := WeekWindow(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.Service.GetUserEntries(user.ID, from, to)
	if err != nil {
		h.Logger.Error("GetUserEntries: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get time entries")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries":   NewEntryResponses(entries),
		"from_date": from.Format(time.DateOnly),
		"to_date":   to.Format(time.DateOnly),
	})
}

func (h *Handler) UpdateHours(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	var dto UpdateHoursDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateHours: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateHours(entryID, user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateHours: service error", "error", err, "entry_id", entryID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewEntryResponse(entry))
}

func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.Service.SubmitEntry(entryID, user.ID)
	if err != nil {
		h.Logger.Error("SubmitEntry: service error", "error", err, "entry_id", entryID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewEntryResponse(entry))
}

func (h *Handler) ApproveEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	if err := h.Service.ApproveEntry(entryID, user.ID); err != nil {
		h.Logger.Error("ApproveEntry: service error", "error", err, "entry_id", entryID, "reviewer_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": string(StatusApproved)})
}

func (h *Handler) ReturnToDraft(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	var dto ReturnToDraftDTO
	if r.Body != nil {
		// comment is optional, an empty body is fine
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}

	if err := h.Service.ReturnEntryToDraft(entryID, user.ID, dto.Comment); err != nil {
		h.Logger.Error("ReturnToDraft: service error", "error", err, "entry_id", entryID, "reviewer_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": string(StatusDraft)})
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEntry(entryID, user.ID, user.IsManager()); err != nil {
		h.Logger.Error("DeleteEntry: service error", "error", err, "entry_id", entryID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid time entry ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid time entry ID")
		return 0, false
	}
	return id, true
}

// WeekWindow resolves the fromDate/toDate query parameters, defaulting to
// the current Monday-to-Sunday week when absent.
func WeekWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := timesheet.StartOfWeek(now)
	to := timesheet.EndOfWeek(now)

	if fromStr := r.URL.Query().Get("fromDate"); fromStr != "" {
		parsed, err := timesheet.ParseDate(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("toDate"); toStr != "" {
		parsed, err := timesheet.ParseDate(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}

package user

import (
	"net/http"

	"github.com/apontae/timesheet-management/internal/auth"
	"github.com/apontae/timesheet-management/internal/transport"
	"github.com/apontae/timesheet-management/pkg/logger"
)

type ServiceAPI interface {
	GetUser(id int64) (*User, error)
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

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetUser(authUser.ID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

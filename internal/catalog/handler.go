package catalog

import (
	"net/http"
	"strconv"

	"github.com/apontae/timesheet-management/internal/transport"
	"github.com/apontae/timesheet-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetClients() ([]*Client, error)
	GetCampaignsByClient(clientID int64) ([]*Campaign, error)
	GetTasksByCampaign(campaignID int64) ([]*CampaignTask, error)
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

func (h *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.GetClients()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get clients")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}

func (h *Handler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.pathID(w, r, "clientID")
	if !ok {
		return
	}

	campaigns, err := h.Service.GetCampaignsByClient(clientID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get campaigns")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"campaigns": campaigns})
}

func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.pathID(w, r, "campaignID")
	if !ok {
		return
	}

	tasks, err := h.Service.GetTasksByCampaign(campaignID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get campaign tasks")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

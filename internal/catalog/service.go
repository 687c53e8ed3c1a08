package catalog

import (
	"log/slog"

	"github.com/apontae/timesheet-management/internal"
)

// Repository defines the data access methods for the catalog.
type Repository interface {
	GetClients() ([]*Client, error)
	GetCampaignsByClient(clientID int64) ([]*Campaign, error)
	GetTasksByCampaign(campaignID int64) ([]*CampaignTask, error)
	GetTask(taskID int64) (*CampaignTask, error)
	GetCampaign(campaignID int64) (*Campaign, error)
}

// Service serves catalog lookups and guards the task→campaign→client
// consistency invariant on time entry writes.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetClients() ([]*Client, error) {
	clients, err := s.repo.GetClients()
	if err != nil {
		s.logger.Error("failed to get clients", "error", err)
		return nil, err
	}
	return clients, nil
}

func (s *Service) GetCampaignsByClient(clientID int64) ([]*Campaign, error) {
	campaigns, err := s.repo.GetCampaignsByClient(clientID)
	if err != nil {
		s.logger.Error("failed to get campaigns", "error", err, "client_id", clientID)
		return nil, err
	}
	return campaigns, nil
}

func (s *Service) GetTasksByCampaign(campaignID int64) ([]*CampaignTask, error) {
	tasks, err := s.repo.GetTasksByCampaign(campaignID)
	if err != nil {
		s.logger.Error("failed to get campaign tasks", "error", err, "campaign_id", campaignID)
		return nil, err
	}
	return tasks, nil
}

// ValidateAssignment verifies that the referenced task belongs to the
// referenced campaign and the campaign to the referenced client. A partial
// triple (some ids missing) is tolerated: such entries are simply excluded
// from aggregation later. A populated but mismatched triple is a data
// integrity error.
func (s *Service) ValidateAssignment(clientID, campaignID, campaignTaskID *int64) error {
	if clientID == nil || campaignID == nil || campaignTaskID == nil {
		return nil
	}

	task, err := s.repo.GetTask(*campaignTaskID)
	if err != nil {
		s.logger.Error("assignment validation: task lookup failed", "error", err, "task_id", *campaignTaskID)
		return internal.NewValidationError("campaign task not found", internal.ErrCodeInvalidAssignment)
	}
	if task.CampaignID != *campaignID {
		return internal.NewValidationError("task does not belong to the given campaign", internal.ErrCodeInvalidAssignment)
	}

	campaign, err := s.repo.GetCampaign(*campaignID)
	if err != nil {
		s.logger.Error("assignment validation: campaign lookup failed", "error", err, "campaign_id", *campaignID)
		return internal.NewValidationError("campaign not found", internal.ErrCodeInvalidAssignment)
	}
	if campaign.ClientID != *clientID {
		return internal.NewValidationError("campaign does not belong to the given client", internal.ErrCodeInvalidAssignment)
	}

	return nil
}

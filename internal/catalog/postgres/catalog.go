package postgres

import (
	"github.com/apontae/timesheet-management/internal/catalog"
	catalogDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

// CatalogRepository implements the catalog.Repository interface using GORM.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetClients() ([]*catalog.Client, error) {
	var models []*catalogDatamodel.Client
	err := r.db.Where("is_active = ?", true).Order("company_name ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	clients := make([]*catalog.Client, len(models))
	for i, m := range models {
		clients[i] = &catalog.Client{
			ID:          m.ID,
			CompanyName: m.CompanyName,
			TradeName:   m.TradeName,
			IsActive:    m.IsActive,
		}
	}
	return clients, nil
}

func (r *CatalogRepository) GetCampaignsByClient(clientID int64) ([]*catalog.Campaign, error) {
	var models []*catalogDatamodel.Campaign
	err := r.db.Where("client_id = ? AND is_active = ?", clientID, true).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	campaigns := make([]*catalog.Campaign, len(models))
	for i, m := range models {
		campaigns[i] = &catalog.Campaign{
			ID:       m.ID,
			ClientID: m.ClientID,
			Name:     m.Name,
			IsActive: m.IsActive,
		}
	}
	return campaigns, nil
}

func (r *CatalogRepository) GetTasksByCampaign(campaignID int64) ([]*catalog.CampaignTask, error) {
	var models []*catalogDatamodel.CampaignTask
	err := r.db.Where("campaign_id = ? AND is_active = ?", campaignID, true).Order("description ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*catalog.CampaignTask, len(models))
	for i, m := range models {
		tasks[i] = &catalog.CampaignTask{
			ID:          m.ID,
			CampaignID:  m.CampaignID,
			Description: m.Description,
			IsActive:    m.IsActive,
		}
	}
	return tasks, nil
}

func (r *CatalogRepository) GetTask(taskID int64) (*catalog.CampaignTask, error) {
	var model catalogDatamodel.CampaignTask
	if err := r.db.Where("id = ?", taskID).First(&model).Error; err != nil {
		return nil, err
	}
	return &catalog.CampaignTask{
		ID:          model.ID,
		CampaignID:  model.CampaignID,
		Description: model.Description,
		IsActive:    model.IsActive,
	}, nil
}

func (r *CatalogRepository) GetCampaign(campaignID int64) (*catalog.Campaign, error) {
	var model catalogDatamodel.Campaign
	if err := r.db.Where("id = ?", campaignID).First(&model).Error; err != nil {
		return nil, err
	}
	return &catalog.Campaign{
		ID:       model.ID,
		ClientID: model.ClientID,
		Name:     model.Name,
		IsActive: model.IsActive,
	}, nil
}

package catalog

// Client is an agency client collaborators log hours against.
type Client struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
	TradeName   string `json:"trade_name,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Campaign belongs to exactly one client.
type Campaign struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CampaignTask belongs to exactly one campaign.
type CampaignTask struct {
	ID          int64  `json:"id"`
	CampaignID  int64  `json:"campaign_id"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

package catalog

import "time"

type Client struct {
	ID          int64     `gorm:"primaryKey"`
	CompanyName string    `gorm:"column:company_name;not null"`
	TradeName   string    `gorm:"column:trade_name"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Client) TableName() string {
	return "clients"
}

type Campaign struct {
	ID        int64     `gorm:"primaryKey"`
	ClientID  int64     `gorm:"column:client_id;not null"`
	Name      string    `gorm:"column:name;not null"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

type CampaignTask struct {
	ID          int64     `gorm:"primaryKey"`
	CampaignID  int64     `gorm:"column:campaign_id;not null"`
	Description string    `gorm:"column:description;not null"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID"`
}

func (CampaignTask) TableName() string {
	return "campaign_tasks"
}

package timeentry

import (
	"time"

	catalogDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/catalog"
	userDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/user"
)

type TimeEntry struct {
	ID             int64      `gorm:"primaryKey"`
	UserID         int64      `gorm:"column:user_id;not null"`
	EntryDate      time.Time  `gorm:"column:entry_date;type:date;not null"`
	Hours          string     `gorm:"column:hours;type:decimal(6,2);not null"`
	Description    string     `gorm:"column:description"`
	Status         string     `gorm:"column:status;default:draft"`
	ClientID       *int64     `gorm:"column:client_id"`
	CampaignID     *int64     `gorm:"column:campaign_id"`
	CampaignTaskID *int64     `gorm:"column:campaign_task_id"`
	SubmittedAt    *time.Time `gorm:"column:submitted_at"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at"`
	ReviewedBy     *int64     `gorm:"column:reviewed_by"`
	ReviewComment  *string    `gorm:"column:review_comment"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	User         *userDatamodel.User            `gorm:"foreignKey:UserID"`
	Client       *catalogDatamodel.Client       `gorm:"foreignKey:ClientID"`
	Campaign     *catalogDatamodel.Campaign     `gorm:"foreignKey:CampaignID"`
	CampaignTask *catalogDatamodel.CampaignTask `gorm:"foreignKey:CampaignTaskID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

package postgres

import (
	"time"

	entryDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/timeentry"
	"github.com/apontae/timesheet-management/internal/timeentry"
	"gorm.io/gorm"
)

// TimeEntryRepository implements the timeentry.Repository interface using GORM.
type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) timeentry.Repository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(entry *timeentry.TimeEntry) error {
	model := timeentry.ToDataModel(entry)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt
	entry.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *TimeEntryRepository) GetByID(id int64) (*timeentry.TimeEntry, error) {
	var model entryDatamodel.TimeEntry
	if err := r.withRelations().Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return timeentry.FromDataModel(&model), nil
}

// GetForUser retrieves one collaborator's entries inside a date window,
// relations preloaded for display.
func (r *TimeEntryRepository) GetForUser(userID int64, from, to time.Time) ([]*timeentry.TimeEntry, error) {
	var models []*entryDatamodel.TimeEntry
	err := r.withRelations().
		Where("user_id = ? AND entry_date BETWEEN ? AND ?", userID, from, to).
		Order("entry_date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return timeentry.FromDataModelSlice(models), nil
}

// GetByDateRange retrieves every entry inside a date window regardless of
// owner, oldest submissions first so reviews happen FIFO.
func (r *TimeEntryRepository) GetByDateRange(from, to time.Time) ([]*timeentry.TimeEntry, error) {
	var models []*entryDatamodel.TimeEntry
	err := r.withRelations().
		Where("entry_date BETWEEN ? AND ?", from, to).
		Order("submitted_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return timeentry.FromDataModelSlice(models), nil
}

func (r *TimeEntryRepository) Update(entry *timeentry.TimeEntry) error {
	entry.UpdatedAt = time.Now()
	return r.db.Save(timeentry.ToDataModel(entry)).Error
}

func (r *TimeEntryRepository) Delete(id int64) error {
	return r.db.Delete(&entryDatamodel.TimeEntry{}, id).Error
}

// CountByStatus counts entries in a status; userID 0 widens the count to
// every collaborator (manager scope).
func (r *TimeEntryRepository) CountByStatus(status timeentry.Status, userID int64) (int64, error) {
	var count int64
	query := r.db.Model(&entryDatamodel.TimeEntry{}).Where("status = ?", string(status))
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *TimeEntryRepository) withRelations() *gorm.DB {
	return r.db.
		Preload("User").
		Preload("Client").
		Preload("Campaign").
		Preload("CampaignTask")
}

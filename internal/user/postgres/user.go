package postgres

import (
	userDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/user"
	"github.com/apontae/timesheet-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var model userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

package postgres

import (
	"github.com/apontae/timesheet-management/internal/auth"
	userDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository implements the auth.Repository interface using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetUserByEmail(email string) (*auth.User, string, error) {
	var model userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&model).Error; err != nil {
		return nil, "", err
	}

	user, err := r.toUser(&model)
	if err != nil {
		return nil, "", err
	}
	return user, model.PasswordHash, nil
}

func (r *AuthRepository) GetUserByID(id int64) (*auth.User, error) {
	var model userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return r.toUser(&model)
}

func (r *AuthRepository) toUser(model *userDatamodel.User) (*auth.User, error) {
	var permissions []userDatamodel.Permission
	if err := r.db.Where("user_id = ?", model.ID).Find(&permissions).Error; err != nil {
		return nil, err
	}

	names := make([]string, len(permissions))
	for i, p := range permissions {
		names[i] = p.Name
	}

	return &auth.User{
		ID:          model.ID,
		Email:       model.Email,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		IsActive:    model.IsActive,
		Permissions: names,
	}, nil
}

package user

import (
	userDatamodel "github.com/apontae/timesheet-management/internal/core/datamodel/user"
)

// User is the profile surface of a collaborator.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

// FullName is the "firstName lastName" form the weekly review table shows.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		IsActive:  m.IsActive,
	}
}

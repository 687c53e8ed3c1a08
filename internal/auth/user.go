package auth

import "golang.org/x/crypto/bcrypt"

// Manager-level permissions. Who may transition an entry is decided here,
// outside the time entry core.
const (
	PermissionApproveEntries = "approve_time_entries"
	PermissionManager        = "manager"
	PermissionAdmin          = "admin"
)

// User is the authenticated actor attached to a request context.
type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	IsActive    bool     `json:"is_active"`
	Permissions []string `json:"permissions"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsManager reports whether the user may review other collaborators' entries.
func (u *User) IsManager() bool {
	return u.HasPermission(PermissionApproveEntries) ||
		u.HasPermission(PermissionManager) ||
		u.HasPermission(PermissionAdmin)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

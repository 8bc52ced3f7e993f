package domain

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "super_admin"
	UserRoleAdmin      UserRole = "admin"
	UserRoleManager    UserRole = "manager"
)

// Valid reports whether r is one of the known staff roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleSuperAdmin, UserRoleAdmin, UserRoleManager:
		return true
	}
	return false
}

// CanManageUsers reports whether the role may create, edit or delete staff accounts.
func (r UserRole) CanManageUsers() bool {
	return r == UserRoleSuperAdmin || r == UserRoleAdmin
}

type User struct {
	ID          int32    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	AvatarURL   string   `json:"avatar_url"`
	Role        UserRole `json:"role"`
	CreatedOn   string   `json:"created_on"`
	UpdatedOn   string   `json:"updated_on"`
}

type UserFilter struct {
	Search   string
	Role     UserRole
	Page     int32
	PageSize int32
}

package models

import "time"

// UserRole represents the available admin roles.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleMember     UserRole = "MEMBER"
)

// User represents a platform account stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"fullName"`
	Phone        string     `db:"phone" json:"phone"`
	RegionID     *string    `db:"region_id" json:"regionId,omitempty"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"isActive"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *UserRole
	Active    *bool
	RegionID  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

package domain

import "time"

// Role is the closed set of user roles. Authorization points match on it
// explicitly instead of comparing raw strings.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleTechnician, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// In reports whether r is one of the given roles.
func (r Role) In(roles ...Role) bool {
	for _, v := range roles {
		if r == v {
			return true
		}
	}
	return false
}

// User is owned by the auth/admin subsystem; booking and notification code
// only consults Role and IsActive.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex;size:50" json:"username"`
	Email        string    `gorm:"column:email;uniqueIndex;size:100" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	FirstName    string    `gorm:"column:first_name;size:50" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:50" json:"last_name"`
	Role         Role      `gorm:"column:role;size:20;index" json:"role"`
	IsActive     bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// DisplayName is what notification messages show ("… by John Smith").
func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Package domain holds the persistent models of the todo service.
package domain

import (
	"fmt"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a string into a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. PasswordHash never holds a plaintext
// password; password.Hasher.Verify is the only valid equality check.
type User struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	Username              string `gorm:"not null;uniqueIndex" json:"username"`
	Email                 string `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash          string `gorm:"column:password;not null" json:"-"`
	Role                  Role   `gorm:"not null;default:USER" json:"role"`
	Enabled               bool   `gorm:"not null;default:true" json:"enabled"`
	AccountNonExpired     bool   `gorm:"not null;default:true" json:"accountNonExpired"`
	AccountNonLocked      bool   `gorm:"not null;default:true" json:"accountNonLocked"`
	CredentialsNonExpired bool   `gorm:"not null;default:true" json:"credentialsNonExpired"`

	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the gorm table name.
func (User) TableName() string { return "users" }

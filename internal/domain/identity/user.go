package identity

import (
	"strings"
	"time"

	"github.com/ims/backend/internal/domain/shared"
)

// User is a minimal account record. Authentication is handled outside
// this service; users exist here so orders and history can attribute
// activity to a real actor with a role.
type User struct {
	shared.BaseEntity
	Username string `gorm:"size:150;not null;uniqueIndex"`
	Email    string `gorm:"size:255"`
	Role     Role   `gorm:"size:30;not null"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user
func NewUser(username, email string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Email:      email,
		Role:       role,
		Active:     true,
	}, nil
}

// ChangeRole assigns a new role to the user
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

// Activate enables the account
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now()
}

package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FullName     *string
	TFASecret    *string
	TFAEnabled   bool
	GoogleID     *string
	CVFileKey    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Sanitized drops secrets before a user leaves the service layer.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.TFASecret = nil
	return u
}

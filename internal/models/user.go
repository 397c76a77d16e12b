package models

import "time"

// Roles assignable to a user. Premium roles carry an expiry after which the
// scheduled housekeeping job reverts the user to RoleUser.
const (
	RoleUser    = "USER"
	RolePremium = "PREMIUM"
	RoleAdmin   = "ADMIN"
)

// User represents a user in the system
type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"` // Not serialized
	Role          string     `json:"role"`
	RoleExpiresAt *time.Time `json:"role_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

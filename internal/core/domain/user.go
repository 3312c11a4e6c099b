package domain

import (
	"errors"
	"time"
)

// Role is the authorization role attached to a user and to every identity.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// ValidRole reports whether r is one of the two known roles. Anything else
// is a configuration error, never a valid identity.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEmployee
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated caller for a single request, extracted from
// the JWT by the Auth middleware. It is never persisted; it is passed
// explicitly into every service operation that needs it.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

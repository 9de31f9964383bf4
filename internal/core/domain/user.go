package domain

import (
	"errors"
	"time"
)

// Role is the coarse permission tier assigned to every user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid reports whether r is one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidRole = errors.New("invalid role")

// User models an account on the board. PasswordHash is opaque and is never
// serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenClaims is the identity snapshot embedded in a bearer token at issuance
// time. Authorization decisions never trust Role here directly; the live user
// record is re-fetched on every authenticated request.
type TokenClaims struct {
	ID    string
	Email string
	Role  Role
}

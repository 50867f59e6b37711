package domain

import (
	"errors"
	"time"
)

// Role values known to the system.
const (
	RoleAttendee   = "attendee"
	RoleOrganizer  = "organizer"
	RoleSuperadmin = "superadmin"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAttendee, RoleOrganizer, RoleSuperadmin:
		return true
	}
	return false
}

var ErrValidation = errors.New("validation failed")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfRoleChange = errors.New("superadmin cannot change their own role")
var ErrForbidden = errors.New("forbidden")
var ErrInvalidID = errors.New("invalid id format")

// User models an account. PasswordHash is excluded from every JSON output.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

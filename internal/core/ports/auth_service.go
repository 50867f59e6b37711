package ports

import (
	"context"

	"github.com/gatherly/events-api/internal/core/domain"
)

// RegisterInput carries the signup payload. Any client-supplied role is
// ignored: the stored role is always attendee.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements the credential/session flow.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// AdminService implements superadmin-only account management.
type AdminService interface {
	// ChangeRole assigns newRole to the target user. It is a no-op success
	// when the target already holds newRole.
	ChangeRole(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error)
}

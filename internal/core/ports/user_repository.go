package ports

import (
	"context"

	"github.com/gatherly/events-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced at write time by a unique index; Create
// surfaces a violation as domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the subset of users matching ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

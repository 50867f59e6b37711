package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

// AdminService implements superadmin account management.
type AdminService struct {
	users    ports.UserRepository
	audit    ports.AuditRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAdminService(users ports.UserRepository, audit ports.AuditRepository, notifier ports.Notifier, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, audit: audit, notifier: notifier, log: log}
}

// ChangeRole assigns newRole to the target user. The returned bool reports
// whether anything was mutated: assigning the role the user already holds
// succeeds without persistence, audit entry, or notification.
func (s *AdminService) ChangeRole(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
	if !domain.ValidRole(newRole) {
		return nil, false, domain.ErrInvalidRole
	}

	// A superadmin must not demote their own account through this path.
	if actor.ID == targetID && actor.Role == domain.RoleSuperadmin && newRole != domain.RoleSuperadmin {
		return nil, false, domain.ErrSelfRoleChange
	}

	// Only a superadmin may mint another superadmin. The route is already
	// superadmin-gated; this guard keeps the rule if routing ever changes.
	if newRole == domain.RoleSuperadmin && actor.Role != domain.RoleSuperadmin {
		return nil, false, domain.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, false, err
	}

	previous := target.Role
	if previous == newRole {
		return target, false, nil
	}

	if err := s.users.UpdateRole(ctx, target.ID, newRole); err != nil {
		return nil, false, err
	}
	target.Role = newRole

	rec := &domain.AuditRecord{
		ActorID:      actor.ID,
		ActorEmail:   actor.Email,
		TargetID:     target.ID,
		TargetEmail:  target.Email,
		PreviousRole: previous,
		NewRole:      newRole,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.audit.Insert(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("target_id", target.ID).Msg("failed to persist audit record")
	}
	s.log.Info().
		Str("actor", actor.Email).
		Str("target", target.Email).
		Str("previous_role", previous).
		Str("new_role", newRole).
		Msg("role changed")

	s.notifier.Enqueue(ports.Mail{
		To:      target.Email,
		Subject: "Your account role has changed",
		Body: fmt.Sprintf("Hi %s,\n\nYour role was changed from %s to %s by %s.",
			target.Name, previous, newRole, actor.Email),
	})

	return target, true, nil
}

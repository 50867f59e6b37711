package ports

import (
	"context"

	"github.com/gatherly/events-api/internal/core/domain"
)

// EventRepository defines persistence operations for events. The participant
// list is embedded in the event document and written back whole.
type EventRepository interface {
	Create(ctx context.Context, ev *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns a page of events ordered by start ascending plus the
	// total count. page is 1-based.
	List(ctx context.Context, page, limit int) ([]*domain.Event, int64, error)
	// Update replaces the stored document with ev. This is a plain
	// read-modify-write: two callers racing for the last capacity slot can
	// both pass the in-memory check and overrun capacity. Accepted
	// limitation inherited from the reference behavior.
	Update(ctx context.Context, ev *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists role-change audit records.
type AuditRepository interface {
	Insert(ctx context.Context, rec *domain.AuditRecord) error
}

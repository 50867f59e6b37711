package ports

import (
	"context"
	"time"

	"github.com/gatherly/events-api/internal/core/domain"
)

// CreateEventInput carries all data needed to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	Start       time.Time
	End         *time.Time
	Capacity    *int
}

// UpdateEventInput carries the allowlisted mutable fields. Nil pointers mean
// "leave unchanged"; SetEnd/SetCapacity distinguish clearing from omission.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	SetEnd      bool
	Capacity    *int
	SetCapacity bool
}

// OrganizerSummary is the public view of an event's organizer.
type OrganizerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventDetail pairs an event with its resolved organizer.
type EventDetail struct {
	Event     *domain.Event
	Organizer *OrganizerSummary
}

// ListEventsResult is one page of events ordered by start time.
type ListEventsResult struct {
	Items []EventDetail
	Total int64
	Page  int
	Limit int
}

// EventService defines use-case operations for events and registrations.
type EventService interface {
	Create(ctx context.Context, actor *domain.User, in CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, id string) (*EventDetail, error)
	List(ctx context.Context, page, limit int) (*ListEventsResult, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	Join(ctx context.Context, actor *domain.User, id string) (*domain.Event, error)
	Leave(ctx context.Context, actor *domain.User, id string) (*domain.Event, error)
}

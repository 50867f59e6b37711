package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// EventService implements event CRUD and the registration use cases.
type EventService struct {
	events   ports.EventRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewEventService(events ports.EventRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *EventService {
	return &EventService{events: events, users: users, notifier: notifier, log: log}
}

// Create stores a new event owned by actor. Role enforcement (organizer or
// superadmin) happens in the route middleware.
func (s *EventService) Create(ctx context.Context, actor *domain.User, in ports.CreateEventInput) (*domain.Event, error) {
	now := time.Now().UTC()
	ev := &domain.Event{
		Title:        in.Title,
		Description:  in.Description,
		Start:        in.Start,
		End:          in.End,
		OrganizerID:  actor.ID,
		Capacity:     in.Capacity,
		Participants: []domain.Participant{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.events.Create(ctx, ev)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Str("organizer", actor.ID).Msg("event created")
	return created, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*ports.EventDetail, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.EventDetail{Event: ev}
	if organizer, err := s.users.FindByID(ctx, ev.OrganizerID); err == nil {
		detail.Organizer = &ports.OrganizerSummary{ID: organizer.ID, Name: organizer.Name, Email: organizer.Email}
	}
	return detail, nil
}

// List returns one page of events ordered by start ascending, with each
// organizer resolved to a public summary.
func (s *EventService) List(ctx context.Context, page, limit int) (*ports.ListEventsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.events.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, ev := range items {
		ids = append(ids, ev.OrganizerID)
	}
	organizers, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to resolve organizers for event list")
		organizers = map[string]*domain.User{}
	}

	result := &ports.ListEventsResult{Total: total, Page: page, Limit: limit}
	for _, ev := range items {
		detail := ports.EventDetail{Event: ev}
		if u, ok := organizers[ev.OrganizerID]; ok {
			detail.Organizer = &ports.OrganizerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		result.Items = append(result.Items, detail)
	}
	return result, nil
}

// Update applies the allowlisted fields to an event. Only the owning
// organizer or a superadmin may update; participants are notified of the
// change best-effort.
func (s *EventService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.CanModify(actor) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		ev.Title = *in.Title
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.Start != nil {
		ev.Start = *in.Start
	}
	if in.SetEnd {
		ev.End = in.End
	}
	if in.SetCapacity {
		ev.Capacity = in.Capacity
	}
	ev.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.notifyParticipants(ctx, ev,
		fmt.Sprintf("Event updated: %s", ev.Title),
		func(u *domain.User) string {
			return fmt.Sprintf("Hi %s,\n\nEvent %q has been updated. New time: %s\n\nThanks.",
				u.Name, ev.Title, ev.Start.Format(time.RFC3339))
		})

	s.log.Info().Str("event_id", ev.ID).Str("actor", actor.ID).Msg("event updated")
	return ev, nil
}

// Delete removes an event and sends a best-effort cancellation notice to
// everyone who was registered.
func (s *EventService) Delete(ctx context.Context, actor *domain.User, id string) error {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ev.CanModify(actor) {
		return domain.ErrForbidden
	}

	if err := s.events.Delete(ctx, ev.ID); err != nil {
		return err
	}

	s.notifyParticipants(ctx, ev,
		fmt.Sprintf("Event cancelled: %s", ev.Title),
		func(u *domain.User) string {
			return fmt.Sprintf("Hi %s,\n\nEvent %q has been cancelled.\n\nSorry for the inconvenience.",
				u.Name, ev.Title)
		})

	s.log.Info().Str("event_id", ev.ID).Str("actor", actor.ID).Msg("event deleted")
	return nil
}

// Join registers actor for the event. Duplicate and capacity checks run in
// the aggregate; the write-back is a plain replace, so concurrent joins for
// the last slot are not serialized (accepted limitation).
func (s *EventService) Join(ctx context.Context, actor *domain.User, id string) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ev.Register(actor.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.notifier.Enqueue(ports.Mail{
		To:      actor.Email,
		Subject: fmt.Sprintf("Registered: %s", ev.Title),
		Body: fmt.Sprintf("Hi %s,\n\nYou've been registered for %q scheduled at %s.\n\nThanks.",
			actor.Name, ev.Title, ev.Start.Format(time.RFC3339)),
	})

	s.log.Info().Str("event_id", ev.ID).Str("user_id", actor.ID).Msg("user registered for event")
	return ev, nil
}

// Leave removes actor from the event's participant list.
func (s *EventService) Leave(ctx context.Context, actor *domain.User, id string) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ev.Unregister(actor.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", ev.ID).Str("user_id", actor.ID).Msg("user unregistered from event")
	return ev, nil
}

// notifyParticipants fans a message out to every registered participant.
// Lookup failures are logged and skipped so delivery never affects the
// triggering operation.
func (s *EventService) notifyParticipants(ctx context.Context, ev *domain.Event, subject string, body func(*domain.User) string) {
	if len(ev.Participants) == 0 {
		return
	}

	ids := make([]string, 0, len(ev.Participants))
	for _, p := range ev.Participants {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", ev.ID).Msg("failed to resolve participants for notification")
		return
	}

	for _, p := range ev.Participants {
		u, ok := users[p.UserID]
		if !ok {
			continue
		}
		s.notifier.Enqueue(ports.Mail{To: u.Email, Subject: subject, Body: body(u)})
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

func eventFixture() (*EventService, *stubEventRepo, *stubUserRepo, *stubNotifier) {
	events := newStubEventRepo()
	users := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := NewEventService(events, users, notifier, zerolog.Nop())
	return svc, events, users, notifier
}

func strPtr(s string) *string        { return &s }
func intPtr(n int) *int              { return &n }
func timePtr(t time.Time) *time.Time { return &t }

func TestEventService_CreateAndGet(t *testing.T) {
	svc, _, users, _ := eventFixture()
	organizer := users.put(&domain.User{Name: "Olga", Email: "olga@example.com", Role: domain.RoleOrganizer})

	start := time.Now().UTC().Add(48 * time.Hour)
	created, err := svc.Create(context.Background(), organizer, ports.CreateEventInput{
		Title: "GopherCon", Start: start, Capacity: intPtr(100),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.OrganizerID != organizer.ID {
		t.Fatalf("organizer mismatch: %q", created.OrganizerID)
	}
	if len(created.Participants) != 0 {
		t.Fatalf("expected empty participant list")
	}

	detail, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.Organizer == nil || detail.Organizer.Email != "olga@example.com" {
		t.Fatalf("organizer not resolved: %+v", detail.Organizer)
	}
}

func TestEventService_Get_NotFound(t *testing.T) {
	svc, _, _, _ := eventFixture()
	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_Update_OwnershipEnforced(t *testing.T) {
	svc, _, users, _ := eventFixture()
	owner := users.put(&domain.User{Name: "Olga", Email: "olga@example.com", Role: domain.RoleOrganizer})
	other := users.put(&domain.User{Name: "Oscar", Email: "oscar@example.com", Role: domain.RoleOrganizer})
	admin := users.put(&domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleSuperadmin})

	ev, err := svc.Create(context.Background(), owner, ports.CreateEventInput{
		Title: "Meetup", Start: time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), other, ev.ID, ports.UpdateEventInput{Title: strPtr("Hijack")}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, err := svc.Update(context.Background(), owner, ev.ID, ports.UpdateEventInput{Title: strPtr("Renamed")}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if _, err := svc.Update(context.Background(), admin, ev.ID, ports.UpdateEventInput{Description: strPtr("by admin")}); err != nil {
		t.Fatalf("superadmin update failed: %v", err)
	}
}

func TestEventService_Update_Allowlist(t *testing.T) {
	svc, events, users, _ := eventFixture()
	owner := users.put(&domain.User{Role: domain.RoleOrganizer, Email: "o@example.com"})

	start := time.Now().UTC().Add(time.Hour)
	ev, _ := svc.Create(context.Background(), owner, ports.CreateEventInput{
		Title: "Meetup", Start: start, Capacity: intPtr(10),
	})

	newStart := start.Add(time.Hour)
	updated, err := svc.Update(context.Background(), owner, ev.ID, ports.UpdateEventInput{
		Title:       strPtr("Renamed"),
		Start:       timePtr(newStart),
		SetCapacity: true, Capacity: nil, // clear capacity
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Renamed" || !updated.Start.Equal(newStart) {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Capacity != nil {
		t.Fatalf("capacity should be cleared")
	}
	if updated.OrganizerID != owner.ID {
		t.Fatalf("organizer must be immutable")
	}
	if !updated.UpdatedAt.After(ev.UpdatedAt) && !updated.UpdatedAt.Equal(ev.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed")
	}

	stored, _ := events.FindByID(context.Background(), ev.ID)
	if stored.Title != "Renamed" {
		t.Fatalf("update not persisted")
	}
}

func TestEventService_Update_NotifiesParticipants(t *testing.T) {
	svc, _, users, notifier := eventFixture()
	owner := users.put(&domain.User{Role: domain.RoleOrganizer, Email: "o@example.com"})
	a := users.put(&domain.User{Role: domain.RoleAttendee, Email: "a@example.com"})
	b := users.put(&domain.User{Role: domain.RoleAttendee, Email: "b@example.com"})

	ev, _ := svc.Create(context.Background(), owner, ports.CreateEventInput{
		Title: "Meetup", Start: time.Now().UTC().Add(time.Hour),
	})
	if _, err := svc.Join(context.Background(), a, ev.ID); err != nil {
		t.Fatalf("join a: %v", err)
	}
	if _, err := svc.Join(context.Background(), b, ev.ID); err != nil {
		t.Fatalf("join b: %v", err)
	}
	before := notifier.count() // two registration confirmations

	if _, err := svc.Update(context.Background(), owner, ev.ID, ports.UpdateEventInput{Title: strPtr("Moved")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if notifier.count() != before+2 {
		t.Fatalf("expected 2 update notices, got %d", notifier.count()-before)
	}
}

func TestEventService_Delete_CascadesCancellationNotice(t *testing.T) {
	svc, events, users, notifier := eventFixture()
	owner := users.put(&domain.User{Role: domain.RoleOrganizer, Email: "o@example.com"})
	a := users.put(&domain.User{Role: domain.RoleAttendee, Email: "a@example.com"})
	stranger := users.put(&domain.User{Role: domain.RoleAttendee, Email: "s@example.com"})

	ev, _ := svc.Create(context.Background(), owner, ports.CreateEventInput{
		Title: "Meetup", Start: time.Now().UTC().Add(time.Hour),
	})
	_, _ = svc.Join(context.Background(), a, ev.ID)
	before := notifier.count()

	if err := svc.Delete(context.Background(), stranger, ev.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, ev.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := events.FindByID(context.Background(), ev.ID); err != domain.ErrEventNotFound {
		t.Fatalf("event should be gone, got %v", err)
	}
	if notifier.count() != before+1 {
		t.Fatalf("expected 1 cancellation notice, got %d", notifier.count()-before)
	}
}

func TestEventService_JoinLeave(t *testing.T) {
	svc, events, users, notifier := eventFixture()
	owner := users.put(&domain.User{Role: domain.RoleOrganizer, Email: "o@example.com"})
	attendee := users.put(&domain.User{Name: "Ann", Role: domain.RoleAttendee, Email: "ann@example.com"})

	ev, _ := svc.Create(context.Background(), owner, ports.CreateEventInput{
		Title: "Meetup", Start: time.Now().UTC().Add(time.Hour), Capacity: intPtr(1),
	})

	joined, err := svc.Join(context.Background(), attendee, ev.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !joined.IsRegistered(attendee.ID) {
		t.Fatalf("attendee not in participant list")
	}
	if notifier.count() != 1 {
		t.Fatalf("expected registration confirmation, got %d mails", notifier.count())
	}

	// Duplicate join fails and does not persist a second entry.
	if _, err := svc.Join(context.Background(), attendee, ev.ID); err != domain.ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	left, err := svc.Leave(context.Background(), attendee, ev.ID)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(left.Participants) != 0 {
		t.Fatalf("participant list not emptied")
	}
	if _, err := svc.Leave(context.Background(), attendee, ev.ID); err != domain.ErrNotRegistered {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}

	stored, _ := events.FindByID(context.Background(), ev.ID)
	if len(stored.Participants) != 0 {
		t.Fatalf("leave not persisted")
	}
}

func TestEventService_Join_Full(t *testing.T) {
	svc, _, users, _ := eventFixture()
	owner := users.put(&domain.User{Role: domain.RoleOrganizer, Email: "o@example.com"})
	b := users.put(&domain.User{Role: domain.RoleAttendee, Email: "b@example.com"})
	c := users.put(&domain.User{Role: domain.RoleAttendee, Email: "c@example.com"})

	ev, _ := svc.Create(context.Background(), owner, ports.CreateEventInput{
		Title: "Tiny", Start: time.Now().UTC().Add(time.Hour), Capacity: intPtr(1),
	})

	if _, err := svc.Join(context.Background(), b, ev.ID); err != nil {
		t.Fatalf("b join: %v", err)
	}
	if _, err := svc.Join(context.Background(), c, ev.ID); err != domain.ErrEventFull {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
	if _, err := svc.Leave(context.Background(), b, ev.ID); err != nil {
		t.Fatalf("b leave: %v", err)
	}
	if _, err := svc.Join(context.Background(), c, ev.ID); err != nil {
		t.Fatalf("c join after slot freed: %v", err)
	}
}

func TestEventService_List_Pagination(t *testing.T) {
	svc, _, users, _ := eventFixture()
	owner := users.put(&domain.User{Name: "Olga", Role: domain.RoleOrganizer, Email: "o@example.com"})

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), owner, ports.CreateEventInput{
			Title: "Meetup", Start: time.Now().UTC().Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 || page.Page != 2 || page.Limit != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d page=%d limit=%d items=%d",
			page.Total, page.Page, page.Limit, len(page.Items))
	}
	for _, item := range page.Items {
		if item.Organizer == nil || item.Organizer.Name != "Olga" {
			t.Fatalf("organizer not resolved on list item")
		}
	}

	// Out-of-range values fall back to sane defaults.
	page, err = svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list defaults: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultPageLimit {
		t.Fatalf("defaults not applied: page=%d limit=%d", page.Page, page.Limit)
	}
}

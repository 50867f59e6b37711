package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")
var ErrAlreadyRegistered = errors.New("already registered")
var ErrEventFull = errors.New("event is full")
var ErrNotRegistered = errors.New("not registered")

// Participant is a single entry in an event's attendance list.
type Participant struct {
	UserID       string    `json:"user"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Event is the core aggregate. Participants is exclusively owned by the
// event; a user id appears at most once and the list never exceeds Capacity
// when Capacity is non-nil.
type Event struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Start        time.Time     `json:"start"`
	End          *time.Time    `json:"end,omitempty"`
	OrganizerID  string        `json:"organizer"`
	Capacity     *int          `json:"capacity"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsRegistered reports whether userID is present in the participant list.
func (e *Event) IsRegistered(userID string) bool {
	for _, p := range e.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Register appends userID to the participant list. Duplicate and capacity
// checks run against the list state at call time; callers racing for the
// last slot are not serialized here (see EventRepository.Update).
func (e *Event) Register(userID string, now time.Time) error {
	if e.IsRegistered(userID) {
		return ErrAlreadyRegistered
	}
	if e.Capacity != nil && len(e.Participants) >= *e.Capacity {
		return ErrEventFull
	}
	e.Participants = append(e.Participants, Participant{UserID: userID, RegisteredAt: now})
	e.UpdatedAt = now
	return nil
}

// Unregister removes the single entry for userID from the participant list.
func (e *Event) Unregister(userID string, now time.Time) error {
	for i, p := range e.Participants {
		if p.UserID == userID {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			e.UpdatedAt = now
			return nil
		}
	}
	return ErrNotRegistered
}

// CanModify reports whether actor may update or delete the event: the owning
// organizer, or any superadmin.
func (e *Event) CanModify(actor *User) bool {
	return actor != nil && (actor.ID == e.OrganizerID || actor.Role == RoleSuperadmin)
}

package handler

import "time"

// messageResponse is the envelope for confirmation-style replies.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse mirrors the envelope rendered by the central error handler;
// declared here so swagger annotations can reference it.
type errorResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createEventRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"       validate:"required"`
	End         *time.Time `json:"end"`
	Capacity    *int       `json:"capacity"    validate:"omitempty,gt=0"`
}

// updateEventRequest is bound manually from a raw JSON object so that an
// explicit null (clear the field) can be told apart from an omitted key.
// Only the allowlisted fields below are ever applied.

// --- Response types ---

// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type organizerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type participantResponse struct {
	UserID       string    `json:"user"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Start        time.Time             `json:"start"`
	End          *time.Time            `json:"end,omitempty"`
	Organizer    organizerResponse     `json:"organizer"`
	Capacity     *int                  `json:"capacity"`
	Participants []participantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type listEventsResponse struct {
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Items []eventResponse `json:"items"`
}

type registrationResponse struct {
	Message string        `json:"message"`
	Event   eventResponse `json:"event"`
}

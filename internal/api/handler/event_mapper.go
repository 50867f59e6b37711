package handler

import (
	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toEventResponse(ev *domain.Event, organizer *ports.OrganizerSummary) eventResponse {
	resp := eventResponse{
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		Start:        ev.Start.UTC(),
		End:          ev.End,
		Organizer:    organizerResponse{ID: ev.OrganizerID},
		Capacity:     ev.Capacity,
		Participants: make([]participantResponse, 0, len(ev.Participants)),
		CreatedAt:    ev.CreatedAt.UTC(),
		UpdatedAt:    ev.UpdatedAt.UTC(),
	}
	if organizer != nil {
		resp.Organizer = organizerResponse{ID: organizer.ID, Name: organizer.Name, Email: organizer.Email}
	}
	for _, p := range ev.Participants {
		resp.Participants = append(resp.Participants, participantResponse{
			UserID:       p.UserID,
			RegisteredAt: p.RegisteredAt.UTC(),
		})
	}
	return resp
}

func toListResponse(result *ports.ListEventsResult) listEventsResponse {
	resp := listEventsResponse{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Items: make([]eventResponse, 0, len(result.Items)),
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, toEventResponse(item.Event, item.Organizer))
	}
	return resp
}

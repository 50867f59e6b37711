package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/events-api/internal/api/metrics"
	apimiddleware "github.com/gatherly/events-api/internal/api/middleware"
	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /events.
//
// @Summary      Create a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	actor, err := apimiddleware.Actor(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ev, err := h.service.Create(c.Request().Context(), actor, ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.Inc()
	organizer := &ports.OrganizerSummary{ID: actor.ID, Name: actor.Name, Email: actor.Email}
	return c.JSON(http.StatusCreated, toEventResponse(ev, organizer))
}

// List handles GET /events?page&limit.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listEventsResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /events/:id.
//
// @Summary      Get an event by id
// @Tags         events
// @Produce      json
// @Param        id  path      string  true  "Event id"
// @Success      200 {object}  eventResponse
// @Failure      404 {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(detail.Event, detail.Organizer))
}

// Update handles PUT /events/:id. The body is bound from raw JSON so an
// explicit null (clear end/capacity) can be told apart from an omitted key;
// only allowlisted fields are ever applied.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Event id"
// @Param        body  body      object  true  "Allowlisted fields: title, description, start, end, capacity"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	actor, err := apimiddleware.Actor(c)
	if err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in, err := buildUpdateInput(raw)
	if err != nil {
		return err
	}

	ev, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(ev, nil))
}

// buildUpdateInput extracts the allowlisted fields from the raw body.
func buildUpdateInput(raw map[string]json.RawMessage) (ports.UpdateEventInput, error) {
	var in ports.UpdateEventInput
	found := false

	if v, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(v, &title); err != nil || title == "" {
			return in, echo.NewHTTPError(http.StatusBadRequest, "title must be a non-empty string")
		}
		in.Title = &title
		found = true
	}
	if v, ok := raw["description"]; ok {
		var desc string
		if err := json.Unmarshal(v, &desc); err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "description must be a string")
		}
		in.Description = &desc
		found = true
	}
	if v, ok := raw["start"]; ok {
		var start time.Time
		if err := json.Unmarshal(v, &start); err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "start must be a valid timestamp")
		}
		in.Start = &start
		found = true
	}
	if v, ok := raw["end"]; ok {
		var end *time.Time
		if err := json.Unmarshal(v, &end); err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "end must be a valid timestamp or null")
		}
		in.End = end
		in.SetEnd = true
		found = true
	}
	if v, ok := raw["capacity"]; ok {
		var capacity *int
		if err := json.Unmarshal(v, &capacity); err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "capacity must be a number or null")
		}
		if capacity != nil && *capacity <= 0 {
			return in, echo.NewHTTPError(http.StatusBadRequest, "capacity must be greater than 0")
		}
		in.Capacity = capacity
		in.SetCapacity = true
		found = true
	}

	if !found {
		return in, echo.NewHTTPError(http.StatusBadRequest, "No valid fields to update")
	}
	return in, nil
}

// Delete handles DELETE /events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event id"
// @Success      200 {object}  messageResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	actor, err := apimiddleware.Actor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Deleted"})
}

// Join handles POST /events/:id/register.
//
// @Summary      Register the authenticated user for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event id"
// @Success      200 {object}  registrationResponse
// @Failure      400 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /events/{id}/register [post]
func (h *EventHandler) Join(c echo.Context) error {
	actor, err := apimiddleware.Actor(c)
	if err != nil {
		return err
	}

	ev, err := h.service.Join(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventFull):
			metrics.RegistrationRejectionsTotal.WithLabelValues("full").Inc()
		case errors.Is(err, domain.ErrAlreadyRegistered):
			metrics.RegistrationRejectionsTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("join").Inc()
	return c.JSON(http.StatusOK, registrationResponse{Message: "Registered", Event: toEventResponse(ev, nil)})
}

// Leave handles POST /events/:id/unregister.
//
// @Summary      Unregister the authenticated user from an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event id"
// @Success      200 {object}  registrationResponse
// @Failure      400 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /events/{id}/unregister [post]
func (h *EventHandler) Leave(c echo.Context) error {
	actor, err := apimiddleware.Actor(c)
	if err != nil {
		return err
	}

	ev, err := h.service.Leave(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("leave").Inc()
	return c.JSON(http.StatusOK, registrationResponse{Message: "Unregistered", Event: toEventResponse(ev, nil)})
}

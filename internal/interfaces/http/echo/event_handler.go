package echo

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	app "github.com/orgstack/orgstack/internal/application/event"
)

type EventHandler struct {
	create       app.CreateEvent
	list         app.ListEvents
	remove       app.DeleteEvent
	getByMeeting app.GetEventByMeetingID
}

func NewEventHandler(create app.CreateEvent, list app.ListEvents, remove app.DeleteEvent, getByMeeting app.GetEventByMeetingID) *EventHandler {
	return &EventHandler{create: create, list: list, remove: remove, getByMeeting: getByMeeting}
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Attendees   string    `json:"attendees"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	WithMeeting bool      `json:"with_meeting"`
}

func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	out, err := h.create.Execute(c.Request().Context(), app.CreateEventInput{
		OrgSlug:     c.Param("slug"),
		Title:       req.Title,
		Description: req.Description,
		Attendees:   req.Attendees,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		WithMeeting: req.WithMeeting,
		CreatorID:   currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidEvent) {
			return badRequest(c, "invalid_event", "title, starts_at and ends_at are required and must be a valid range")
		}
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		return internalError(c, "failed to create event")
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *EventHandler) List(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListEventsInput{
		OrgSlug: c.Param("slug"),
		UserID:  currentUser(c).ID,
	})
	if err != nil {
		return internalError(c, "failed to list events")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *EventHandler) Delete(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid_event_id", "id must be a number")
	}

	err = h.remove.Execute(c.Request().Context(), app.DeleteEventInput{
		OrgSlug: c.Param("slug"),
		EventID: eventID,
		ActorID: currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		if errors.Is(err, app.ErrDeleteForbidden) {
			return forbidden(c, "only the creator or an organization admin may delete an event")
		}
		return internalError(c, "failed to delete event")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) GetByMeetingID(c echo.Context) error {
	out, err := h.getByMeeting.Execute(c.Request().Context(), app.GetEventByMeetingIDInput{
		OrgSlug:   c.Param("slug"),
		MeetingID: c.Param("meeting_id"),
		UserID:    currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "failed to get event")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

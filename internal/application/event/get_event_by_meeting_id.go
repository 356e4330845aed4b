package event

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/event"
)

type GetEventByMeetingIDInput struct {
	OrgSlug   string
	MeetingID string
	UserID    uint64
}

type GetEventByMeetingID interface {
	Execute(ctx context.Context, in GetEventByMeetingIDInput) (EventOutput, error)
}

type meetingEventGetter interface {
	GetByMeetingID(ctx context.Context, orgSlug, meetingID string) (domain.Event, error)
}

type getEventByMeetingID struct {
	events meetingEventGetter
}

func NewGetEventByMeetingID(events meetingEventGetter) GetEventByMeetingID {
	return &getEventByMeetingID{events: events}
}

// Execute looks up an event by its meeting id. Events the caller may
// not see read as not-found, so the endpoint never confirms a hidden
// meeting exists.
func (uc *getEventByMeetingID) Execute(ctx context.Context, in GetEventByMeetingIDInput) (EventOutput, error) {
	e, err := uc.events.GetByMeetingID(ctx, in.OrgSlug, in.MeetingID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return EventOutput{}, ErrEventNotFound
		}
		return EventOutput{}, fmt.Errorf("get event by meeting id: %w", err)
	}
	if !e.VisibleTo(in.UserID) {
		return EventOutput{}, ErrEventNotFound
	}
	return toEventOutput(e), nil
}

package event_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/orgstack/orgstack/internal/application/event"
	domain "github.com/orgstack/orgstack/internal/domain/event"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
)

type fakeMeetingGetter struct {
	event domain.Event
	err   error
}

func (f *fakeMeetingGetter) GetByMeetingID(ctx context.Context, orgSlug, meetingID string) (domain.Event, error) {
	if f.err != nil {
		return domain.Event{}, f.err
	}
	return f.event, nil
}

func TestGetEventByMeetingIDVisibility(t *testing.T) {
	t.Parallel()

	creatorID := uint64(9)
	events := &fakeMeetingGetter{event: domain.Event{
		ID:        11,
		MeetingID: "abc-123",
		CreatedBy: &creatorID,
		Attendees: []userdomain.User{{ID: 5, Username: "alice"}},
	}}
	uc := app.NewGetEventByMeetingID(events)

	// Creator and attendee see the event.
	for _, userID := range []uint64{9, 5} {
		out, err := uc.Execute(context.Background(), app.GetEventByMeetingIDInput{
			OrgSlug: "acme-school", MeetingID: "abc-123", UserID: userID,
		})
		if err != nil {
			t.Fatalf("user %d: expected no error, got %v", userID, err)
		}
		if out.ID != 11 {
			t.Fatalf("user %d: unexpected event %d", userID, out.ID)
		}
	}

	// Anyone else reads not-found, never forbidden.
	_, err := uc.Execute(context.Background(), app.GetEventByMeetingIDInput{
		OrgSlug: "acme-school", MeetingID: "abc-123", UserID: 77,
	})
	if !errors.Is(err, app.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound for hidden event, got %v", err)
	}
}

func TestGetEventByMeetingIDOpenEventVisibleToAll(t *testing.T) {
	t.Parallel()

	events := &fakeMeetingGetter{event: domain.Event{ID: 12, MeetingID: "open-1"}}
	uc := app.NewGetEventByMeetingID(events)

	out, err := uc.Execute(context.Background(), app.GetEventByMeetingIDInput{
		OrgSlug: "acme-school", MeetingID: "open-1", UserID: 77,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ID != 12 {
		t.Fatalf("unexpected event %d", out.ID)
	}
}

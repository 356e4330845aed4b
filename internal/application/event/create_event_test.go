package event_test

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	app "github.com/orgstack/orgstack/internal/application/event"
	domain "github.com/orgstack/orgstack/internal/domain/event"
	"github.com/orgstack/orgstack/internal/domain/notification"
	orgdomain "github.com/orgstack/orgstack/internal/domain/org"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
)

type fakeOrgGetter struct {
	org orgdomain.Organization
	err error
}

func (f *fakeOrgGetter) GetBySlug(ctx context.Context, slug string) (orgdomain.Organization, error) {
	if f.err != nil {
		return orgdomain.Organization{}, f.err
	}
	return f.org, nil
}

type fakeMemberResolver struct {
	members map[string]userdomain.User
	asked   []string
}

func (f *fakeMemberResolver) ResolveMembers(ctx context.Context, orgID uint64, usernames []string) ([]userdomain.User, error) {
	f.asked = usernames
	var users []userdomain.User
	for _, username := range usernames {
		if u, ok := f.members[username]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeEventCreator struct {
	created     *domain.Event
	attendeeIDs []uint64
}

func (f *fakeEventCreator) Create(ctx context.Context, e domain.Event, attendeeIDs []uint64) (domain.Event, error) {
	e.ID = 11
	f.created = &e
	f.attendeeIDs = attendeeIDs
	return e, nil
}

type fakeUserGetter struct {
	users map[uint64]userdomain.User
}

func (f *fakeUserGetter) GetByID(ctx context.Context, userID uint64) (userdomain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return userdomain.User{}, userdomain.ErrUserNotFound
	}
	return u, nil
}

type fakeNotifier struct {
	messages []notification.Message
}

func (f *fakeNotifier) Notify(ctx context.Context, msg notification.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestCreateEventResolvesAttendeesAndNotifies(t *testing.T) {
	t.Parallel()

	orgs := &fakeOrgGetter{org: orgdomain.Organization{ID: 1, Slug: "acme-school"}}
	memberships := &fakeMemberResolver{members: map[string]userdomain.User{
		"alice": {ID: 5, Username: "alice"},
		"bob":   {ID: 6, Username: "bob"},
	}}
	events := &fakeEventCreator{}
	users := &fakeUserGetter{users: map[uint64]userdomain.User{9: {ID: 9, Username: "teacher"}}}
	notify := &fakeNotifier{}

	uc := app.NewCreateEvent(orgs, memberships, events, users, notify, testLogger())

	starts := time.Now().Add(time.Hour)
	out, err := uc.Execute(context.Background(), app.CreateEventInput{
		OrgSlug:     "acme-school",
		Title:       "Staff meeting",
		Attendees:   "alice, bob\nstranger",
		StartsAt:    starts,
		EndsAt:      starts.Add(time.Hour),
		WithMeeting: true,
		CreatorID:   9,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(memberships.asked, []string{"alice", "bob", "stranger"}) {
		t.Fatalf("unexpected resolved usernames %v", memberships.asked)
	}
	// Non-members are dropped silently.
	if !reflect.DeepEqual(events.attendeeIDs, []uint64{5, 6}) {
		t.Fatalf("unexpected attendee ids %v", events.attendeeIDs)
	}
	if out.MeetingID == "" {
		t.Fatal("expected a generated meeting id")
	}

	if len(notify.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(notify.messages))
	}
	msg := notify.messages[0]
	if msg.Actor != "teacher" || msg.Verb != "added" {
		t.Fatalf("unexpected notification %q %q", msg.Actor, msg.Verb)
	}
	if !reflect.DeepEqual(msg.RecipientIDs, []uint64{5, 6}) {
		t.Fatalf("unexpected recipients %v", msg.RecipientIDs)
	}
}

func TestCreateEventNoMeetingIDUnlessRequested(t *testing.T) {
	t.Parallel()

	orgs := &fakeOrgGetter{org: orgdomain.Organization{ID: 1, Slug: "acme-school"}}
	events := &fakeEventCreator{}
	uc := app.NewCreateEvent(orgs, &fakeMemberResolver{}, events, &fakeUserGetter{}, &fakeNotifier{}, testLogger())

	starts := time.Now().Add(time.Hour)
	out, err := uc.Execute(context.Background(), app.CreateEventInput{
		OrgSlug:   "acme-school",
		Title:     "Quiet event",
		StartsAt:  starts,
		EndsAt:    starts.Add(time.Hour),
		CreatorID: 9,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.MeetingID != "" {
		t.Fatalf("expected no meeting id, got %q", out.MeetingID)
	}
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	uc := app.NewCreateEvent(&fakeOrgGetter{}, &fakeMemberResolver{}, &fakeEventCreator{}, &fakeUserGetter{}, &fakeNotifier{}, testLogger())

	starts := time.Now().Add(time.Hour)
	cases := []app.CreateEventInput{
		{OrgSlug: "acme", Title: "", StartsAt: starts, EndsAt: starts.Add(time.Hour)},
		{OrgSlug: "acme", Title: "No times"},
		{OrgSlug: "acme", Title: "Backwards", StartsAt: starts, EndsAt: starts.Add(-time.Hour)},
	}
	for _, in := range cases {
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, app.ErrInvalidEvent) {
			t.Fatalf("input %+v: expected ErrInvalidEvent, got %v", in, err)
		}
	}
}

func TestSplitAttendees(t *testing.T) {
	t.Parallel()

	got := app.SplitAttendees(" alice,bob\n carol \r\n,,dave")
	want := []string{"alice", "bob", "carol", "dave"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(app.SplitAttendees("")) != 0 {
		t.Fatal("expected empty result for empty input")
	}
}

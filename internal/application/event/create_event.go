package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	domain "github.com/orgstack/orgstack/internal/domain/event"
	"github.com/orgstack/orgstack/internal/domain/notification"
	orgdomain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/domain/user"
)

type CreateEventInput struct {
	OrgSlug     string
	Title       string
	Description string
	// Attendees is the raw invitee list as typed: usernames separated
	// by commas or newlines.
	Attendees   string
	StartsAt    time.Time
	EndsAt      time.Time
	WithMeeting bool
	CreatorID   uint64
}

type CreateEvent interface {
	Execute(ctx context.Context, in CreateEventInput) (EventOutput, error)
}

type organizationGetter interface {
	GetBySlug(ctx context.Context, slug string) (orgdomain.Organization, error)
}

type memberResolver interface {
	ResolveMembers(ctx context.Context, orgID uint64, usernames []string) ([]user.User, error)
}

type eventCreator interface {
	Create(ctx context.Context, e domain.Event, attendeeIDs []uint64) (domain.Event, error)
}

type userGetter interface {
	GetByID(ctx context.Context, userID uint64) (user.User, error)
}

type notifier interface {
	Notify(ctx context.Context, msg notification.Message) error
}

type createEvent struct {
	orgs        organizationGetter
	memberships memberResolver
	events      eventCreator
	users       userGetter
	notify      notifier
	logger      *log.Logger
}

func NewCreateEvent(orgs organizationGetter, memberships memberResolver, events eventCreator, users userGetter, notify notifier, logger *log.Logger) CreateEvent {
	return &createEvent{orgs: orgs, memberships: memberships, events: events, users: users, notify: notify, logger: logger}
}

func (uc *createEvent) Execute(ctx context.Context, in CreateEventInput) (EventOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.StartsAt.IsZero() || in.EndsAt.IsZero() || in.EndsAt.Before(in.StartsAt) {
		return EventOutput{}, ErrInvalidEvent
	}

	o, err := uc.orgs.GetBySlug(ctx, in.OrgSlug)
	if err != nil {
		if errors.Is(err, orgdomain.ErrOrganizationNotFound) {
			return EventOutput{}, ErrOrganizationNotFound
		}
		return EventOutput{}, fmt.Errorf("get organization: %w", err)
	}

	// Invitees outside the organization are dropped rather than
	// rejected.
	attendees, err := uc.memberships.ResolveMembers(ctx, o.ID, SplitAttendees(in.Attendees))
	if err != nil {
		return EventOutput{}, fmt.Errorf("resolve attendees: %w", err)
	}
	attendeeIDs := make([]uint64, 0, len(attendees))
	for _, attendee := range attendees {
		attendeeIDs = append(attendeeIDs, attendee.ID)
	}

	meetingID := ""
	if in.WithMeeting {
		meetingID = uuid.NewString()
	}

	creatorID := in.CreatorID
	created, err := uc.events.Create(ctx, domain.Event{
		OrgID:       o.ID,
		Title:       title,
		Description: in.Description,
		MeetingID:   meetingID,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		CreatedBy:   &creatorID,
	}, attendeeIDs)
	if err != nil {
		return EventOutput{}, fmt.Errorf("create event: %w", err)
	}

	uc.notifyAttendees(ctx, in.CreatorID, created, attendeeIDs)

	return toEventOutput(created), nil
}

func (uc *createEvent) notifyAttendees(ctx context.Context, actorID uint64, e domain.Event, recipientIDs []uint64) {
	if len(recipientIDs) == 0 {
		return
	}
	actor, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		uc.logger.Error("resolve actor for notification", "actor_id", actorID, "err", err)
		return
	}
	msg := notification.Message{
		Actor:        actor.Username,
		Verb:         "added",
		ActionObject: notification.Ref{Type: "event", Label: e.Title},
		RecipientIDs: recipientIDs,
	}
	if err := uc.notify.Notify(ctx, msg); err != nil {
		uc.logger.Error("notify attendees", "event_id", e.ID, "err", err)
	}
}

// SplitAttendees tokenizes a free-form invitee list on commas and
// newlines.
func SplitAttendees(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	usernames := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			usernames = append(usernames, trimmed)
		}
	}
	return usernames
}

package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	domain "github.com/orgstack/orgstack/internal/domain/event"
	"github.com/orgstack/orgstack/internal/domain/notification"
)

type DeleteEventInput struct {
	OrgSlug string
	EventID uint64
	ActorID uint64
}

type DeleteEvent interface {
	Execute(ctx context.Context, in DeleteEventInput) error
}

type eventDeleter interface {
	GetForOrg(ctx context.Context, orgSlug string, eventID uint64) (domain.Event, error)
	Delete(ctx context.Context, eventID uint64) error
}

type adminChecker interface {
	IsAdmin(ctx context.Context, orgID, userID uint64) (bool, error)
}

type deleteEvent struct {
	events      eventDeleter
	memberships adminChecker
	users       userGetter
	notify      notifier
	logger      *log.Logger
}

func NewDeleteEvent(events eventDeleter, memberships adminChecker, users userGetter, notify notifier, logger *log.Logger) DeleteEvent {
	return &deleteEvent{events: events, memberships: memberships, users: users, notify: notify, logger: logger}
}

// Execute deletes an event. Allowed for the event's creator and for
// organization admins; attendees are told afterwards.
func (uc *deleteEvent) Execute(ctx context.Context, in DeleteEventInput) error {
	e, err := uc.events.GetForOrg(ctx, in.OrgSlug, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	allowed := e.CreatedBy != nil && *e.CreatedBy == in.ActorID
	if !allowed {
		isAdmin, err := uc.memberships.IsAdmin(ctx, e.OrgID, in.ActorID)
		if err != nil {
			return fmt.Errorf("check admin: %w", err)
		}
		allowed = isAdmin
	}
	if !allowed {
		return ErrDeleteForbidden
	}

	if err := uc.events.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	uc.notifyDeleted(ctx, in.ActorID, e)
	return nil
}

func (uc *deleteEvent) notifyDeleted(ctx context.Context, actorID uint64, e domain.Event) {
	recipientIDs := make([]uint64, 0, len(e.Attendees))
	for _, attendee := range e.Attendees {
		if attendee.ID != actorID {
			recipientIDs = append(recipientIDs, attendee.ID)
		}
	}
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
		Verb:         "removed the event",
		ActionObject: notification.Ref{Type: "event", Label: e.Title},
		RecipientIDs: recipientIDs,
	}
	if err := uc.notify.Notify(ctx, msg); err != nil {
		uc.logger.Error("notify deleted event", "event_id", e.ID, "err", err)
	}
}

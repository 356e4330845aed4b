package org

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/orgstack/orgstack/internal/domain/notification"
	domain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/domain/user"
)

type RemoveMemberInput struct {
	OrgSlug  string
	Username string
	ActorID  uint64
}

type RemoveMember interface {
	Execute(ctx context.Context, in RemoveMemberInput) error
}

type membershipRemover interface {
	Delete(ctx context.Context, orgSlug, username string) (bool, error)
}

type removeMember struct {
	orgs        organizationGetter
	users       userGetter
	memberships membershipRemover
	notify      notifier
	logger      *log.Logger
}

func NewRemoveMember(orgs organizationGetter, users userGetter, memberships membershipRemover, notify notifier, logger *log.Logger) RemoveMember {
	return &removeMember{orgs: orgs, users: users, memberships: memberships, notify: notify, logger: logger}
}

func (uc *removeMember) Execute(ctx context.Context, in RemoveMemberInput) error {
	o, err := uc.orgs.GetBySlug(ctx, in.OrgSlug)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("get organization: %w", err)
	}

	member, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}

	removed, err := uc.memberships.Delete(ctx, in.OrgSlug, in.Username)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if !removed {
		return ErrMembershipNotFound
	}

	actor, err := uc.users.GetByID(ctx, in.ActorID)
	if err != nil {
		uc.logger.Error("resolve actor for notification", "actor_id", in.ActorID, "err", err)
		return nil
	}
	msg := notification.Message{
		Actor:        actor.Username,
		Verb:         "removed",
		ActionObject: notification.Ref{Type: "user", Label: member.Username},
		Target:       notification.Ref{Type: "organization", Label: o.Name},
		RecipientIDs: []uint64{member.ID},
	}
	if err := uc.notify.Notify(ctx, msg); err != nil {
		uc.logger.Error("notify removed member", "org_slug", o.Slug, "username", member.Username, "err", err)
	}
	return nil
}

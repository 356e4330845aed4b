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

type UpsertMemberInput struct {
	OrgSlug  string
	Username string
	Role     string
	ActorID  uint64
}

type UpsertMemberOutput struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Created  bool   `json:"created"`
}

type UpsertMember interface {
	Execute(ctx context.Context, in UpsertMemberInput) (UpsertMemberOutput, error)
}

type organizationGetter interface {
	GetBySlug(ctx context.Context, slug string) (domain.Organization, error)
}

type userGetter interface {
	GetByID(ctx context.Context, userID uint64) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type notifier interface {
	Notify(ctx context.Context, msg notification.Message) error
}

type upsertMember struct {
	orgs        organizationGetter
	users       userGetter
	memberships membershipUpserter
	notify      notifier
	logger      *log.Logger
}

func NewUpsertMember(orgs organizationGetter, users userGetter, memberships membershipUpserter, notify notifier, logger *log.Logger) UpsertMember {
	return &upsertMember{orgs: orgs, users: users, memberships: memberships, notify: notify, logger: logger}
}

func (uc *upsertMember) Execute(ctx context.Context, in UpsertMemberInput) (UpsertMemberOutput, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return UpsertMemberOutput{}, ErrInvalidMember
	}

	o, err := uc.orgs.GetBySlug(ctx, in.OrgSlug)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return UpsertMemberOutput{}, ErrOrganizationNotFound
		}
		return UpsertMemberOutput{}, fmt.Errorf("get organization: %w", err)
	}

	member, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return UpsertMemberOutput{}, ErrInvalidMember
		}
		return UpsertMemberOutput{}, fmt.Errorf("get user: %w", err)
	}

	created, err := uc.memberships.Upsert(ctx, o.ID, member.ID, role)
	if err != nil {
		return UpsertMemberOutput{}, fmt.Errorf("upsert membership: %w", err)
	}

	uc.notifyMember(ctx, in.ActorID, member, o, created)

	return UpsertMemberOutput{Username: member.Username, Role: string(role), Created: created}, nil
}

// notifyMember is best-effort: a failed notification never fails the
// membership change.
func (uc *upsertMember) notifyMember(ctx context.Context, actorID uint64, member user.User, o domain.Organization, created bool) {
	actor, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		uc.logger.Error("resolve actor for notification", "actor_id", actorID, "err", err)
		return
	}

	verb := "changed the status of"
	if created {
		verb = "added"
	}
	msg := notification.Message{
		Actor:        actor.Username,
		Verb:         verb,
		ActionObject: notification.Ref{Type: "user", Label: member.Username},
		Target:       notification.Ref{Type: "organization", Label: o.Name},
		RecipientIDs: []uint64{member.ID},
	}
	if err := uc.notify.Notify(ctx, msg); err != nil {
		uc.logger.Error("notify member", "org_slug", o.Slug, "username", member.Username, "err", err)
	}
}

package org

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type GetMembershipInput struct {
	OrgSlug  string
	Username string
}

type GetMembership interface {
	Execute(ctx context.Context, in GetMembershipInput) (MembershipOutput, error)
}

type membershipGetter interface {
	Get(ctx context.Context, orgSlug, username string) (domain.MembershipDetail, error)
}

type getMembership struct {
	memberships membershipGetter
}

func NewGetMembership(memberships membershipGetter) GetMembership {
	return &getMembership{memberships: memberships}
}

func (uc *getMembership) Execute(ctx context.Context, in GetMembershipInput) (MembershipOutput, error) {
	row, err := uc.memberships.Get(ctx, in.OrgSlug, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return MembershipOutput{}, ErrMembershipNotFound
		}
		return MembershipOutput{}, fmt.Errorf("get membership: %w", err)
	}
	return toMembershipOutput(row), nil
}

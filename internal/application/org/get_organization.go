package org

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type GetOrganizationInput struct {
	Slug   string
	UserID uint64
}

type GetOrganization interface {
	Execute(ctx context.Context, in GetOrganizationInput) (OrganizationOutput, error)
}

type organizationMemberGetter interface {
	GetForMember(ctx context.Context, slug string, userID uint64) (domain.Organization, error)
}

type getOrganization struct {
	orgs organizationMemberGetter
}

func NewGetOrganization(orgs organizationMemberGetter) GetOrganization {
	return &getOrganization{orgs: orgs}
}

// Execute resolves the organization only for its members; everyone else
// sees a not-found.
func (uc *getOrganization) Execute(ctx context.Context, in GetOrganizationInput) (OrganizationOutput, error) {
	row, err := uc.orgs.GetForMember(ctx, in.Slug, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return OrganizationOutput{}, ErrOrganizationNotFound
		}
		return OrganizationOutput{}, fmt.Errorf("get organization: %w", err)
	}
	return toOrganizationOutput(row), nil
}

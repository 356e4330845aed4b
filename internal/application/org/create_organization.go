package org

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/slug"
)

type CreateOrganizationInput struct {
	Name      string
	About     string
	CreatorID uint64
}

type CreateOrganization interface {
	Execute(ctx context.Context, in CreateOrganizationInput) (OrganizationOutput, error)
}

type organizationCreator interface {
	SlugTaken(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, o domain.Organization) (domain.Organization, error)
}

type membershipUpserter interface {
	Upsert(ctx context.Context, orgID, userID uint64, role domain.Role) (bool, error)
}

type createOrganization struct {
	orgs        organizationCreator
	memberships membershipUpserter
}

func NewCreateOrganization(orgs organizationCreator, memberships membershipUpserter) CreateOrganization {
	return &createOrganization{orgs: orgs, memberships: memberships}
}

func (uc *createOrganization) Execute(ctx context.Context, in CreateOrganizationInput) (OrganizationOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return OrganizationOutput{}, ErrInvalidOrganization
	}

	orgSlug, err := slug.Unique(ctx, name, uc.orgs.SlugTaken)
	if err != nil {
		return OrganizationOutput{}, fmt.Errorf("generate slug: %w", err)
	}

	creatorID := in.CreatorID
	created, err := uc.orgs.Create(ctx, domain.Organization{
		Name:      name,
		Slug:      orgSlug,
		About:     in.About,
		CreatedBy: &creatorID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameTaken) {
			return OrganizationOutput{}, ErrOrganizationExists
		}
		return OrganizationOutput{}, fmt.Errorf("create organization: %w", err)
	}

	// The creator joins as admin.
	if _, err := uc.memberships.Upsert(ctx, created.ID, in.CreatorID, domain.RoleAdmin); err != nil {
		return OrganizationOutput{}, fmt.Errorf("create admin membership: %w", err)
	}

	return toOrganizationOutput(created), nil
}

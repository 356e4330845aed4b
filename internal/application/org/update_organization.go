package org

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/slug"
)

type UpdateOrganizationInput struct {
	Slug  string
	Name  string
	About string
}

type UpdateOrganization interface {
	Execute(ctx context.Context, in UpdateOrganizationInput) error
}

type organizationUpdater interface {
	GetBySlug(ctx context.Context, slug string) (domain.Organization, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, o domain.Organization) error
}

type updateOrganization struct {
	orgs organizationUpdater
}

func NewUpdateOrganization(orgs organizationUpdater) UpdateOrganization {
	return &updateOrganization{orgs: orgs}
}

// Execute updates name and about; empty input fields keep the stored
// value. A name change regenerates the slug.
func (uc *updateOrganization) Execute(ctx context.Context, in UpdateOrganizationInput) error {
	row, err := uc.orgs.GetBySlug(ctx, in.Slug)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("get organization: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if len(name) > 50 {
		return ErrInvalidOrganization
	}

	if name != "" && name != row.Name {
		newSlug, err := slug.Unique(ctx, name, uc.orgs.SlugTaken)
		if err != nil {
			return fmt.Errorf("generate slug: %w", err)
		}
		row.Name = name
		row.Slug = newSlug
	}
	if in.About != "" {
		row.About = in.About
	}

	if err := uc.orgs.Update(ctx, row); err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

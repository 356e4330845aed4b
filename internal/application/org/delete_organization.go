package org

import (
	"context"
	"fmt"
)

type DeleteOrganization interface {
	Execute(ctx context.Context, slug string) error
}

type organizationDeleter interface {
	SoftDelete(ctx context.Context, slug string) (bool, error)
}

type deleteOrganization struct {
	orgs organizationDeleter
}

func NewDeleteOrganization(orgs organizationDeleter) DeleteOrganization {
	return &deleteOrganization{orgs: orgs}
}

// Execute soft-deletes: the row is kept, but hidden from listings.
func (uc *deleteOrganization) Execute(ctx context.Context, slug string) error {
	deleted, err := uc.orgs.SoftDelete(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if !deleted {
		return ErrOrganizationNotFound
	}
	return nil
}

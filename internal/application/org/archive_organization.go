package org

import (
	"context"
	"fmt"
)

type ArchiveOrganization interface {
	Execute(ctx context.Context, slug string) error
}

type organizationArchiver interface {
	Archive(ctx context.Context, slug string) (bool, error)
}

type archiveOrganization struct {
	orgs organizationArchiver
}

func NewArchiveOrganization(orgs organizationArchiver) ArchiveOrganization {
	return &archiveOrganization{orgs: orgs}
}

func (uc *archiveOrganization) Execute(ctx context.Context, slug string) error {
	archived, err := uc.orgs.Archive(ctx, slug)
	if err != nil {
		return fmt.Errorf("archive organization: %w", err)
	}
	if !archived {
		return ErrOrganizationNotFound
	}
	return nil
}

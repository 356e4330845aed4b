package org

import (
	"context"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/org"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ListOrganizationsInput struct {
	UserID uint64
	Limit  int
	Offset int
}

type ListOrganizationsOutput struct {
	Count   int64                `json:"count"`
	Results []OrganizationOutput `json:"results"`
}

type ListOrganizations interface {
	Execute(ctx context.Context, in ListOrganizationsInput) (ListOrganizationsOutput, error)
}

type organizationLister interface {
	ListForUser(ctx context.Context, userID uint64, limit, offset int) ([]domain.Organization, int64, error)
}

type listOrganizations struct {
	orgs organizationLister
}

func NewListOrganizations(orgs organizationLister) ListOrganizations {
	return &listOrganizations{orgs: orgs}
}

func (uc *listOrganizations) Execute(ctx context.Context, in ListOrganizationsInput) (ListOrganizationsOutput, error) {
	limit, offset := clampPage(in.Limit, in.Offset)

	rows, total, err := uc.orgs.ListForUser(ctx, in.UserID, limit, offset)
	if err != nil {
		return ListOrganizationsOutput{}, fmt.Errorf("list organizations: %w", err)
	}

	results := make([]OrganizationOutput, 0, len(rows))
	for _, row := range rows {
		results = append(results, toOrganizationOutput(row))
	}
	return ListOrganizationsOutput{Count: total, Results: results}, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

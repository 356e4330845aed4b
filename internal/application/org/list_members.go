package org

import (
	"context"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type ListMembersInput struct {
	OrgSlug string
	Limit   int
	Offset  int
}

type ListMembersOutput struct {
	Count   int64          `json:"count"`
	Results []MemberOutput `json:"results"`
}

type ListMembers interface {
	Execute(ctx context.Context, in ListMembersInput) (ListMembersOutput, error)
}

type membershipLister interface {
	ListByOrgSlug(ctx context.Context, orgSlug string, limit, offset int) ([]domain.Member, int64, error)
}

type listMembers struct {
	memberships membershipLister
}

func NewListMembers(memberships membershipLister) ListMembers {
	return &listMembers{memberships: memberships}
}

func (uc *listMembers) Execute(ctx context.Context, in ListMembersInput) (ListMembersOutput, error) {
	limit, offset := clampPage(in.Limit, in.Offset)

	rows, total, err := uc.memberships.ListByOrgSlug(ctx, in.OrgSlug, limit, offset)
	if err != nil {
		return ListMembersOutput{}, fmt.Errorf("list members: %w", err)
	}

	results := make([]MemberOutput, 0, len(rows))
	for _, row := range rows {
		results = append(results, toMemberOutput(row))
	}
	return ListMembersOutput{Count: total, Results: results}, nil
}

package org

import (
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
)

type OrganizationOutput struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	About     string    `json:"about"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberUserOutput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   string `json:"picture"`
}

type MemberOutput struct {
	User     MemberUserOutput `json:"user"`
	Role     string           `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

type MembershipOutput struct {
	Org      OrganizationOutput `json:"org"`
	User     MemberUserOutput   `json:"user"`
	Role     string             `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

func toOrganizationOutput(o domain.Organization) OrganizationOutput {
	return OrganizationOutput{
		Name:      o.Name,
		Slug:      o.Slug,
		About:     o.About,
		Picture:   o.Picture,
		CreatedAt: o.CreatedAt,
	}
}

func toMemberUserOutput(u userdomain.User) MemberUserOutput {
	return MemberUserOutput{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Picture:   u.Picture,
	}
}

func toMemberOutput(m domain.Member) MemberOutput {
	return MemberOutput{
		User:     toMemberUserOutput(m.User),
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

func toMembershipOutput(m domain.MembershipDetail) MembershipOutput {
	return MembershipOutput{
		Org:      toOrganizationOutput(m.Org),
		User:     toMemberUserOutput(m.User),
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

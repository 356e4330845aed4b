package org

import (
	"time"

	"github.com/orgstack/orgstack/internal/domain/user"
)

// Member pairs a user with their role inside one organization.
type Member struct {
	User     user.User
	Role     Role
	JoinedAt time.Time
}

// MembershipDetail is the full membership read model, including the
// organization it belongs to.
type MembershipDetail struct {
	Org      Organization
	User     user.User
	Role     Role
	JoinedAt time.Time
}

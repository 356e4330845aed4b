// Package org holds the organization aggregate: the tenant entity that
// groups users, events and notifications, plus its role-tagged
// memberships.
package org

import "time"

type Organization struct {
	ID         uint64
	Name       string
	Slug       string
	About      string
	Picture    string
	CreatedBy  *uint64
	CreatedAt  time.Time
	ArchivedAt *time.Time
	DeletedAt  *time.Time
}

type Membership struct {
	OrgID    uint64
	UserID   uint64
	Role     Role
	JoinedAt time.Time
}

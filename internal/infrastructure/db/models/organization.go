package models

import "time"

type Organization struct {
	ID         uint64 `gorm:"primaryKey"`
	Name       string `gorm:"size:50;not null;uniqueIndex"`
	Slug       string `gorm:"size:255;uniqueIndex"`
	About      string `gorm:"type:text"`
	Picture    string `gorm:"size:255"`
	CreatedBy  *uint64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ArchivedAt *time.Time
	DeletedAt  *time.Time
}

func (Organization) TableName() string {
	return "organizations"
}

type OrganizationMembership struct {
	ID       uint64 `gorm:"primaryKey"`
	OrgID    uint64 `gorm:"column:organization_id;not null;uniqueIndex:idx_memberships_org_user"`
	UserID   uint64 `gorm:"not null;uniqueIndex:idx_memberships_org_user"`
	Role     string `gorm:"size:50;not null;default:student"`
	JoinedAt time.Time

	Org  Organization `gorm:"foreignKey:OrgID"`
	User User         `gorm:"foreignKey:UserID"`
}

func (OrganizationMembership) TableName() string {
	return "organization_memberships"
}

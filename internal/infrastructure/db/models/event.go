package models

import "time"

type Event struct {
	ID          uint64 `gorm:"primaryKey"`
	OrgID       uint64 `gorm:"column:organization_id;index;not null"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	MeetingID   string `gorm:"size:100;index"`
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedBy   *uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Attendees []User `gorm:"many2many:event_attendees;"`
}

func (Event) TableName() string {
	return "events"
}

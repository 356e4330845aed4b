package models

import "time"

type Notification struct {
	ID                uint64 `gorm:"primaryKey"`
	RecipientID       uint64 `gorm:"index;not null"`
	Actor             string `gorm:"size:150;not null"`
	Verb              string `gorm:"size:255;not null"`
	ActionObjectType  string `gorm:"size:50"`
	ActionObjectLabel string `gorm:"size:255"`
	TargetType        string `gorm:"size:50"`
	TargetLabel       string `gorm:"size:255"`
	Unread            bool   `gorm:"not null;default:true;index"`
	CreatedAt         time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

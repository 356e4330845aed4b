package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID                uint64         `gorm:"primaryKey"`
	Username          string         `gorm:"size:150;not null;uniqueIndex"`
	Email             *string        `gorm:"size:320;uniqueIndex"`
	PasswordHash      string         `gorm:"size:255;not null"`
	FirstName         string         `gorm:"size:150"`
	LastName          string         `gorm:"size:150"`
	Picture           string         `gorm:"size:255"`
	Settings          datatypes.JSON
	Active            bool           `gorm:"not null;default:false"`
	MustResetPassword bool           `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (User) TableName() string {
	return "users"
}

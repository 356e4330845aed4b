package models

import "time"

// SessionToken stores a SHA-256 digest of an opaque bearer token. The
// plaintext token is only ever returned once, at signin.
type SessionToken struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"index;not null"`
	TokenHash string `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time
	ExpiresAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (SessionToken) TableName() string {
	return "session_tokens"
}

package models

import "time"

type MemberImportJob struct {
	ID             string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrgSlug        string `gorm:"type:text;not null"`
	SourcePath     string `gorm:"type:text;not null"`
	Status         string `gorm:"type:text;not null"`
	ProcessedCount int64  `gorm:"not null;default:0"`
	UpdatedCount   int64  `gorm:"not null;default:0"`
	CreatedCount   int64  `gorm:"not null;default:0"`
	Attempts       int    `gorm:"not null;default:0"`
	MaxAttempts    int    `gorm:"not null;default:10"`
	ErrorMessage   *string `gorm:"type:text"`
	NextRunAt      time.Time
	HeartbeatAt    *time.Time
	LeaseExpiresAt *time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (MemberImportJob) TableName() string {
	return "member_import_jobs"
}

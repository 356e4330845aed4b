package org

import "time"

// ImportJob is one queued run of the CSV membership import for a single
// organization. The queue re-runs the whole file on failure, so
// Attempts counts full invocations.
type ImportJob struct {
	ID          string
	OrgSlug     string
	SourcePath  string
	Status      string
	Attempts    int
	MaxAttempts int
}

type ImportProgress struct {
	ProcessedCount int64
	UpdatedCount   int64
	CreatedCount   int64
}

// ImportSummary reports the final outcome of an import run. The
// (updated, created) pair ordering is part of the job contract.
type ImportSummary struct {
	ProcessedCount int64
	UpdatedCount   int64
	CreatedCount   int64
}

// ImportJobView is the read model served to API consumers polling a
// job.
type ImportJobView struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	ProcessedCount int64      `json:"processed_count"`
	UpdatedCount   int64      `json:"updated_count"`
	CreatedCount   int64      `json:"created_count"`
	Attempts       int        `json:"attempts"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

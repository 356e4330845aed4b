package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// ExponentialBackoff returns the dispatcher retry delay policy: base
// doubled per prior attempt, capped at max.
func ExponentialBackoff(base, max time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		delay := base
		for i := 1; i < attempt; i++ {
			delay *= 2
			if delay >= max {
				return max
			}
		}
		if delay > max {
			return max
		}
		return delay
	}
}

const maxImportAttempts = 10

// MemberImportJobRepository is the Postgres-backed dispatcher for
// membership import jobs: enqueue, lease-based claiming, progress
// tracking, and retry scheduling with exponential backoff.
type MemberImportJobRepository struct {
	db      *gorm.DB
	backoff func(attempt int) time.Duration
}

func NewMemberImportJobRepository(db *gorm.DB) *MemberImportJobRepository {
	return &MemberImportJobRepository{
		db:      db,
		backoff: ExponentialBackoff(5*time.Second, 10*time.Minute),
	}
}

// WithBackoff overrides the retry delay policy.
func (r *MemberImportJobRepository) WithBackoff(backoff func(attempt int) time.Duration) *MemberImportJobRepository {
	r.backoff = backoff
	return r
}

func (r *MemberImportJobRepository) Enqueue(ctx context.Context, orgSlug, sourcePath string) (string, error) {
	job := models.MemberImportJob{
		OrgSlug:     orgSlug,
		SourcePath:  sourcePath,
		Status:      "queued",
		MaxAttempts: maxImportAttempts,
		NextRunAt:   time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return "", fmt.Errorf("create member import job: %w", err)
	}

	return job.ID, nil
}

// ClaimNext atomically claims one runnable job: a queued job whose
// next_run_at has passed, or a running job whose lease expired. Returns
// nil when nothing is runnable.
func (r *MemberImportJobRepository) ClaimNext(ctx context.Context, lease time.Duration) (*domain.ImportJob, error) {
	var row models.MemberImportJob
	result := r.db.WithContext(ctx).Raw(`
UPDATE member_import_jobs SET
  status = 'running',
  attempts = attempts + 1,
  started_at = COALESCE(started_at, NOW()),
  heartbeat_at = NOW(),
  lease_expires_at = NOW() + ? * INTERVAL '1 second',
  updated_at = NOW()
WHERE id = (
  SELECT id FROM member_import_jobs
  WHERE (status = 'queued' AND next_run_at <= NOW())
     OR (status = 'running' AND lease_expires_at < NOW())
  ORDER BY next_run_at
  LIMIT 1
  FOR UPDATE SKIP LOCKED
)
RETURNING *`, lease.Seconds()).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("claim member import job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &domain.ImportJob{
		ID:          row.ID,
		OrgSlug:     row.OrgSlug,
		SourcePath:  row.SourcePath,
		Status:      row.Status,
		Attempts:    row.Attempts,
		MaxAttempts: row.MaxAttempts,
	}, nil
}

func (r *MemberImportJobRepository) Heartbeat(ctx context.Context, jobID string, lease time.Duration) error {
	err := r.db.WithContext(ctx).Exec(`
UPDATE member_import_jobs SET
  heartbeat_at = NOW(),
  lease_expires_at = NOW() + ? * INTERVAL '1 second',
  updated_at = NOW()
WHERE id = ?`, lease.Seconds(), jobID).Error
	if err != nil {
		return fmt.Errorf("heartbeat member import job: %w", err)
	}
	return nil
}

func (r *MemberImportJobRepository) UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	err := r.db.WithContext(ctx).Model(&models.MemberImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"processed_count": progress.ProcessedCount,
			"updated_count":   progress.UpdatedCount,
			"created_count":   progress.CreatedCount,
		}).Error
	if err != nil {
		return fmt.Errorf("update member import progress: %w", err)
	}
	return nil
}

func (r *MemberImportJobRepository) Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error {
	err := r.db.WithContext(ctx).Model(&models.MemberImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":          "succeeded",
			"processed_count": summary.ProcessedCount,
			"updated_count":   summary.UpdatedCount,
			"created_count":   summary.CreatedCount,
			"error_message":   nil,
			"finished_at":     time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("complete member import job: %w", err)
	}
	return nil
}

// Requeue schedules another attempt after the backoff delay for the
// job's current attempt count.
func (r *MemberImportJobRepository) Requeue(ctx context.Context, jobID, reason string) error {
	var row models.MemberImportJob
	if err := r.db.WithContext(ctx).First(&row, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrImportJobNotFound
		}
		return fmt.Errorf("load member import job: %w", err)
	}

	err := r.db.WithContext(ctx).Model(&models.MemberImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":           "queued",
			"error_message":    reason,
			"next_run_at":      time.Now().Add(r.backoff(row.Attempts)),
			"lease_expires_at": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("requeue member import job: %w", err)
	}
	return nil
}

func (r *MemberImportJobRepository) Fail(ctx context.Context, jobID, reason string) error {
	err := r.db.WithContext(ctx).Model(&models.MemberImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":        "failed",
			"error_message": reason,
			"finished_at":   time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("fail member import job: %w", err)
	}
	return nil
}

// GetStatus returns the job read model, scoped to the organization the
// caller asked about.
func (r *MemberImportJobRepository) GetStatus(ctx context.Context, orgSlug, jobID string) (domain.ImportJobView, error) {
	var row models.MemberImportJob
	err := r.db.WithContext(ctx).First(&row, "id = ? AND org_slug = ?", jobID, orgSlug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ImportJobView{}, domain.ErrImportJobNotFound
		}
		return domain.ImportJobView{}, fmt.Errorf("get member import job: %w", err)
	}

	return domain.ImportJobView{
		ID:             row.ID,
		Status:         row.Status,
		ProcessedCount: row.ProcessedCount,
		UpdatedCount:   row.UpdatedCount,
		CreatedCount:   row.CreatedCount,
		Attempts:       row.Attempts,
		ErrorMessage:   row.ErrorMessage,
		FinishedAt:     row.FinishedAt,
	}, nil
}

package org

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type ImportSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

// memberImportStore is the worker's write path. GetOrCreateUser and
// UpsertMembershipRole each report whether a new row was created, which
// feeds the (updated, created) summary.
type memberImportStore interface {
	GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	GetOrCreateUser(ctx context.Context, username string) (uint64, bool, error)
	UpsertMembershipRole(ctx context.Context, orgID, userID uint64, role domain.Role) (bool, error)
}

type importWorkerJobRepo interface {
	ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error)
	Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error
	UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error
	Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error
	Requeue(ctx context.Context, jobID string, reason string) error
	Fail(ctx context.Context, jobID string, reason string) error
}

type ImportWorkerConfig struct {
	Workers           int
	ChunkSize         int
	PollInterval      time.Duration
	LeaseDuration     time.Duration
	HeartbeatInterval time.Duration
}

// ImportWorker drains the membership import queue. Each claimed job
// replays its whole CSV; the store upserts make replays idempotent, so
// a retried job converges on the same final state.
type ImportWorker struct {
	repo   importWorkerJobRepo
	source ImportSource
	store  memberImportStore
	cfg    ImportWorkerConfig
	logger *log.Logger

	once sync.Once
}

func NewImportWorker(repo importWorkerJobRepo, source ImportSource, store memberImportStore, cfg ImportWorkerConfig, logger *log.Logger) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Workers > 10 {
		cfg.Workers = 10
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 500
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = 60 * time.Second
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = cfg.LeaseDuration / 2
	}

	return &ImportWorker{
		repo:   repo,
		source: source,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			go w.workerLoop(ctx)
		}
	})
}

func (w *ImportWorker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.repo.ClaimNext(ctx, w.cfg.LeaseDuration)
		if err != nil {
			w.logger.Error("claim next import job", "err", err)
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if job == nil {
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if err := w.ProcessJob(ctx, *job); err != nil {
			w.logger.Error("process import job", "job_id", job.ID, "err", err)
		}
	}
}

// ProcessJob runs one claimed import to completion. A missing
// organization is not an error: the job completes with an empty summary
// and the slug is logged, matching the no-op contract for stale jobs.
func (w *ImportWorker) ProcessJob(ctx context.Context, job domain.ImportJob) error {
	o, err := w.store.GetOrganizationBySlug(ctx, job.OrgSlug)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			w.logger.Error("import target organization does not exist", "job_id", job.ID, "org_slug", job.OrgSlug)
			if err := w.repo.Complete(ctx, job.ID, domain.ImportSummary{}); err != nil {
				return w.onProcessingError(ctx, job, fmt.Errorf("complete job: %w", err))
			}
			return nil
		}
		return w.onProcessingError(ctx, job, fmt.Errorf("get organization: %w", err))
	}

	reader, err := w.source.Open(ctx, job.SourcePath)
	if err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("open import source: %w", err))
	}
	defer reader.Close()

	records := csv.NewReader(reader)
	records.FieldsPerRecord = 2
	records.TrimLeadingSpace = true

	ticker := time.NewTicker(w.cfg.HeartbeatInterval)
	defer ticker.Stop()

	summary := domain.ImportSummary{}
	sinceFlush := 0

	flush := func() error {
		if err := w.repo.UpdateProgress(ctx, job.ID, domain.ImportProgress{
			ProcessedCount: summary.ProcessedCount,
			UpdatedCount:   summary.UpdatedCount,
			CreatedCount:   summary.CreatedCount,
		}); err != nil {
			return err
		}
		if err := w.repo.Heartbeat(ctx, job.ID, w.cfg.LeaseDuration); err != nil {
			return err
		}
		sinceFlush = 0
		return nil
	}

	var rowIndex int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.repo.Heartbeat(ctx, job.ID, w.cfg.LeaseDuration); err != nil {
				return w.onProcessingError(ctx, job, fmt.Errorf("heartbeat: %w", err))
			}
		default:
		}

		record, err := records.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return w.onProcessingError(ctx, job, fmt.Errorf("read csv row %d: %w", rowIndex, err))
		}

		username := strings.TrimSpace(record[0])
		role, roleErr := domain.ParseRole(record[1])
		if username == "" || roleErr != nil {
			return w.onProcessingError(ctx, job, fmt.Errorf("invalid csv row %d (%q, %q)", rowIndex, record[0], record[1]))
		}

		userID, _, err := w.store.GetOrCreateUser(ctx, username)
		if err != nil {
			return w.onProcessingError(ctx, job, fmt.Errorf("get or create user %q: %w", username, err))
		}

		created, err := w.store.UpsertMembershipRole(ctx, o.ID, userID, role)
		if err != nil {
			return w.onProcessingError(ctx, job, fmt.Errorf("upsert membership for %q: %w", username, err))
		}

		summary.ProcessedCount++
		if created {
			summary.CreatedCount++
		} else {
			summary.UpdatedCount++
		}

		sinceFlush++
		if sinceFlush >= w.cfg.ChunkSize {
			if err := flush(); err != nil {
				return w.onProcessingError(ctx, job, fmt.Errorf("flush progress: %w", err))
			}
		}
		rowIndex++
	}

	if err := w.repo.Complete(ctx, job.ID, summary); err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("complete job: %w", err))
	}

	w.logger.Info("import job finished",
		"job_id", job.ID,
		"org_slug", job.OrgSlug,
		"processed", summary.ProcessedCount,
		"updated", summary.UpdatedCount,
		"created", summary.CreatedCount,
	)
	return nil
}

func (w *ImportWorker) onProcessingError(ctx context.Context, job domain.ImportJob, err error) error {
	reason := truncateReason(err.Error())
	if job.Attempts < job.MaxAttempts {
		if requeueErr := w.repo.Requeue(ctx, job.ID, reason); requeueErr != nil {
			return fmt.Errorf("%v; requeue failed: %w", err, requeueErr)
		}
		return err
	}

	if failErr := w.repo.Fail(ctx, job.ID, reason); failErr != nil {
		return fmt.Errorf("%v; fail update failed: %w", err, failErr)
	}
	return err
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}

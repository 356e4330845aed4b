package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"github.com/orgstack/orgstack/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	return db
}

func migrateImportJobs(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		t.Fatalf("failed to create extension: %v", err)
	}
	if err := db.AutoMigrate(&models.MemberImportJob{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM member_import_jobs").Error; err != nil {
		t.Fatalf("failed to cleanup member_import_jobs: %v", err)
	}
}

func TestMemberImportJobLifecycleIntegration(t *testing.T) {
	db := openTestDB(t)
	migrateImportJobs(t, db)

	repo := repository.NewMemberImportJobRepository(db)

	jobID, err := repo.Enqueue(context.Background(), "acme-school", "members.csv")
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	claimed, err := repo.ClaimNext(context.Background(), 30*time.Second)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if claimed == nil {
		t.Fatal("expected claimed job")
	}
	if claimed.ID != jobID {
		t.Fatalf("unexpected job id: %s", claimed.ID)
	}
	if claimed.OrgSlug != "acme-school" {
		t.Fatalf("unexpected org slug: %s", claimed.OrgSlug)
	}
	if claimed.Attempts != 1 {
		t.Fatalf("expected attempts=1, got %d", claimed.Attempts)
	}

	// A second claim must find nothing while the lease holds.
	again, err := repo.ClaimNext(context.Background(), 30*time.Second)
	if err != nil {
		t.Fatalf("second claim failed: %v", err)
	}
	if again != nil {
		t.Fatalf("expected no claimable job, got %s", again.ID)
	}

	if err := repo.Heartbeat(context.Background(), claimed.ID, 30*time.Second); err != nil {
		t.Fatalf("heartbeat failed: %v", err)
	}

	if err := repo.UpdateProgress(context.Background(), claimed.ID, domain.ImportProgress{
		ProcessedCount: 10,
		UpdatedCount:   4,
		CreatedCount:   6,
	}); err != nil {
		t.Fatalf("update progress failed: %v", err)
	}

	if err := repo.Complete(context.Background(), claimed.ID, domain.ImportSummary{
		ProcessedCount: 10,
		UpdatedCount:   4,
		CreatedCount:   6,
	}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	view, err := repo.GetStatus(context.Background(), "acme-school", claimed.ID)
	if err != nil {
		t.Fatalf("get status failed: %v", err)
	}
	if view.Status != "succeeded" {
		t.Fatalf("expected succeeded, got %s", view.Status)
	}
	if view.UpdatedCount != 4 || view.CreatedCount != 6 {
		t.Fatalf("unexpected counts: updated=%d created=%d", view.UpdatedCount, view.CreatedCount)
	}

	// The status read is scoped by organization.
	if _, err := repo.GetStatus(context.Background(), "other-org", claimed.ID); err != domain.ErrImportJobNotFound {
		t.Fatalf("expected ErrImportJobNotFound for foreign org, got %v", err)
	}
}

func TestMemberImportJobRequeueBackoffIntegration(t *testing.T) {
	db := openTestDB(t)
	migrateImportJobs(t, db)

	repo := repository.NewMemberImportJobRepository(db).
		WithBackoff(repository.ExponentialBackoff(time.Hour, 24*time.Hour))

	jobID, err := repo.Enqueue(context.Background(), "acme-school", "members.csv")
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	claimed, err := repo.ClaimNext(context.Background(), 30*time.Second)
	if err != nil || claimed == nil {
		t.Fatalf("claim failed: %v %v", claimed, err)
	}

	if err := repo.Requeue(context.Background(), jobID, "transient failure"); err != nil {
		t.Fatalf("requeue failed: %v", err)
	}

	// next_run_at is an hour away, so nothing is claimable now.
	again, err := repo.ClaimNext(context.Background(), 30*time.Second)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if again != nil {
		t.Fatalf("expected backoff to defer the job, got %s", again.ID)
	}

	var row models.MemberImportJob
	if err := db.First(&row, "id = ?", jobID).Error; err != nil {
		t.Fatalf("load job failed: %v", err)
	}
	if row.Status != "queued" {
		t.Fatalf("expected queued, got %s", row.Status)
	}
	if row.ErrorMessage == nil || *row.ErrorMessage != "transient failure" {
		t.Fatalf("unexpected error message: %v", row.ErrorMessage)
	}
}

func TestMemberImportJobFailIntegration(t *testing.T) {
	db := openTestDB(t)
	migrateImportJobs(t, db)

	repo := repository.NewMemberImportJobRepository(db)

	jobID, err := repo.Enqueue(context.Background(), "acme-school", "members.csv")
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if _, err := repo.ClaimNext(context.Background(), 30*time.Second); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if err := repo.Fail(context.Background(), jobID, "broken file"); err != nil {
		t.Fatalf("fail failed: %v", err)
	}

	view, err := repo.GetStatus(context.Background(), "acme-school", jobID)
	if err != nil {
		t.Fatalf("get status failed: %v", err)
	}
	if view.Status != "failed" {
		t.Fatalf("expected failed, got %s", view.Status)
	}
	if view.ErrorMessage == nil || *view.ErrorMessage != "broken file" {
		t.Fatalf("unexpected error message: %v", view.ErrorMessage)
	}
	if view.FinishedAt == nil {
		t.Fatal("expected finished_at to be set")
	}
}

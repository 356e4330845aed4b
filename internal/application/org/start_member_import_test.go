package org_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/orgstack/orgstack/internal/application/org"
	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type fakeOrgGetter struct {
	org domain.Organization
	err error
}

func (f *fakeOrgGetter) GetBySlug(ctx context.Context, slug string) (domain.Organization, error) {
	if f.err != nil {
		return domain.Organization{}, f.err
	}
	return f.org, nil
}

type fakeImportQueue struct {
	enqueuedSlug string
	enqueuedPath string
	err          error
}

func (f *fakeImportQueue) Enqueue(ctx context.Context, orgSlug, sourcePath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.enqueuedSlug = orgSlug
	f.enqueuedPath = sourcePath
	return "job-123", nil
}

func TestStartMemberImportEnqueues(t *testing.T) {
	t.Parallel()

	orgs := &fakeOrgGetter{org: domain.Organization{ID: 1, Slug: "acme-school"}}
	queue := &fakeImportQueue{}
	uc := app.NewStartMemberImport(orgs, queue)

	out, err := uc.Execute(context.Background(), app.StartMemberImportInput{
		OrgSlug:    "acme-school",
		SourcePath: "uploads/members.csv",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.JobID != "job-123" {
		t.Fatalf("expected job id, got %q", out.JobID)
	}
	if out.Status != "queued" {
		t.Fatalf("expected queued status, got %q", out.Status)
	}
	if queue.enqueuedSlug != "acme-school" || queue.enqueuedPath != "uploads/members.csv" {
		t.Fatalf("unexpected enqueue args: %q %q", queue.enqueuedSlug, queue.enqueuedPath)
	}
}

func TestStartMemberImportRejectsNonCSV(t *testing.T) {
	t.Parallel()

	uc := app.NewStartMemberImport(&fakeOrgGetter{}, &fakeImportQueue{})

	for _, sourcePath := range []string{"", "members.json", "members"} {
		_, err := uc.Execute(context.Background(), app.StartMemberImportInput{
			OrgSlug:    "acme-school",
			SourcePath: sourcePath,
		})
		if !errors.Is(err, app.ErrInvalidImportSource) {
			t.Fatalf("source %q: expected ErrInvalidImportSource, got %v", sourcePath, err)
		}
	}
}

func TestStartMemberImportRejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	uc := app.NewStartMemberImport(&fakeOrgGetter{org: domain.Organization{ID: 1, Slug: "acme-school"}}, &fakeImportQueue{})

	for _, sourcePath := range []string{"../secret.csv", "uploads/../../secret.csv", "/etc/members.csv", ".."} {
		_, err := uc.Execute(context.Background(), app.StartMemberImportInput{
			OrgSlug:    "acme-school",
			SourcePath: sourcePath,
		})
		if !errors.Is(err, app.ErrInvalidImportSource) {
			t.Fatalf("source %q: expected ErrInvalidImportSource, got %v", sourcePath, err)
		}
	}
}

func TestStartMemberImportRejectsEmptySlug(t *testing.T) {
	t.Parallel()

	uc := app.NewStartMemberImport(&fakeOrgGetter{}, &fakeImportQueue{})

	_, err := uc.Execute(context.Background(), app.StartMemberImportInput{
		OrgSlug:    "   ",
		SourcePath: "members.csv",
	})
	if !errors.Is(err, app.ErrInvalidImportSource) {
		t.Fatalf("expected ErrInvalidImportSource, got %v", err)
	}
}

func TestStartMemberImportUnknownOrganization(t *testing.T) {
	t.Parallel()

	orgs := &fakeOrgGetter{err: domain.ErrOrganizationNotFound}
	uc := app.NewStartMemberImport(orgs, &fakeImportQueue{})

	_, err := uc.Execute(context.Background(), app.StartMemberImportInput{
		OrgSlug:    "gone",
		SourcePath: "members.csv",
	})
	if !errors.Is(err, app.ErrOrganizationNotFound) {
		t.Fatalf("expected ErrOrganizationNotFound, got %v", err)
	}
}

func TestStartMemberImportEnqueueFailure(t *testing.T) {
	t.Parallel()

	orgs := &fakeOrgGetter{org: domain.Organization{ID: 1, Slug: "acme-school"}}
	queue := &fakeImportQueue{err: errors.New("db down")}
	uc := app.NewStartMemberImport(orgs, queue)

	_, err := uc.Execute(context.Background(), app.StartMemberImportInput{
		OrgSlug:    "acme-school",
		SourcePath: "members.csv",
	})
	if !errors.Is(err, app.ErrEnqueueImportJob) {
		t.Fatalf("expected ErrEnqueueImportJob, got %v", err)
	}
}

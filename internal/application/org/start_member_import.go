package org

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type StartMemberImportInput struct {
	OrgSlug    string
	SourcePath string
}

type StartMemberImportOutput struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type StartMemberImport interface {
	Execute(ctx context.Context, in StartMemberImportInput) (StartMemberImportOutput, error)
}

type startMemberImport struct {
	orgs  organizationGetter
	queue domain.ImportJobQueue
}

func NewStartMemberImport(orgs organizationGetter, queue domain.ImportJobQueue) StartMemberImport {
	return &startMemberImport{orgs: orgs, queue: queue}
}

// Execute enqueues a membership import job. The CSV itself is read by
// the worker, not here, so a bad file surfaces as a failed job rather
// than a rejected request.
func (uc *startMemberImport) Execute(ctx context.Context, in StartMemberImportInput) (StartMemberImportOutput, error) {
	orgSlug := strings.TrimSpace(in.OrgSlug)
	sourcePath := strings.TrimSpace(in.SourcePath)
	if orgSlug == "" || sourcePath == "" {
		return StartMemberImportOutput{}, ErrInvalidImportSource
	}
	if !strings.EqualFold(filepath.Ext(sourcePath), ".csv") {
		return StartMemberImportOutput{}, ErrInvalidImportSource
	}
	clean := filepath.Clean(sourcePath)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return StartMemberImportOutput{}, ErrInvalidImportSource
	}

	if _, err := uc.orgs.GetBySlug(ctx, orgSlug); err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return StartMemberImportOutput{}, ErrOrganizationNotFound
		}
		return StartMemberImportOutput{}, fmt.Errorf("get organization: %w", err)
	}

	jobID, err := uc.queue.Enqueue(ctx, orgSlug, sourcePath)
	if err != nil {
		return StartMemberImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return StartMemberImportOutput{JobID: jobID, Status: "queued"}, nil
}

package org

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/org"
)

type GetImportJobInput struct {
	OrgSlug string
	JobID   string
}

type GetImportJob interface {
	Execute(ctx context.Context, in GetImportJobInput) (domain.ImportJobView, error)
}

type importJobStatusGetter interface {
	GetStatus(ctx context.Context, orgSlug, jobID string) (domain.ImportJobView, error)
}

type getImportJob struct {
	jobs importJobStatusGetter
}

func NewGetImportJob(jobs importJobStatusGetter) GetImportJob {
	return &getImportJob{jobs: jobs}
}

func (uc *getImportJob) Execute(ctx context.Context, in GetImportJobInput) (domain.ImportJobView, error) {
	view, err := uc.jobs.GetStatus(ctx, in.OrgSlug, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return domain.ImportJobView{}, ErrImportJobNotFound
		}
		return domain.ImportJobView{}, fmt.Errorf("get import job: %w", err)
	}
	return view, nil
}

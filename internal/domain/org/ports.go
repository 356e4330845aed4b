package org

import "context"

type ImportJobQueue interface {
	Enqueue(ctx context.Context, orgSlug, sourcePath string) (string, error)
}

package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathOutsideRoot is returned for source paths that resolve outside
// the configured media directory.
var ErrPathOutsideRoot = errors.New("source path escapes media root")

// MediaRoot resolves relative source paths against the configured media
// directory. Paths that resolve outside the directory are rejected, so
// a request-supplied path can only ever name files under the root.
type MediaRoot struct {
	BaseDir string
}

func NewMediaRoot(baseDir string) *MediaRoot {
	if baseDir == "" {
		baseDir = "."
	}
	return &MediaRoot{BaseDir: baseDir}
}

func (s *MediaRoot) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	if filepath.IsAbs(sourcePath) {
		return nil, fmt.Errorf("%w: %s", ErrPathOutsideRoot, sourcePath)
	}

	path := filepath.Join(s.BaseDir, sourcePath)
	rel, err := filepath.Rel(s.BaseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrPathOutsideRoot, sourcePath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}

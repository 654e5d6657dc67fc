package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phambaophuc/image-resizer/internal/apperror"
	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/phambaophuc/image-resizer/pkg/utils"
)

// LocalSink writes below a root directory on the local filesystem. Writes
// truncate in place; a concurrent reader may see a partial file.
type LocalSink struct {
	root string
}

func NewLocalSink(root string) (*LocalSink, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %q: %w", root, err)
	}
	return &LocalSink{root: absRoot}, nil
}

func (s *LocalSink) Store(ctx context.Context, data []byte, format models.Format, directory, filename string) error {
	dir, err := utils.ResolveUnder(s.root, directory)
	if err != nil {
		return apperror.Path(err, "invalid directory")
	}
	if err := utils.ValidateFilename(filename); err != nil {
		return apperror.Path(err, "invalid filename")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperror.Path(err, "failed to create directory %s", dir)
	}
	if err := s.checkLinks(dir); err != nil {
		return err
	}

	fullPath := filepath.Join(dir, filename)
	if info, err := os.Lstat(fullPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return apperror.Path(nil, "refusing to write through symlink %s", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperror.IO(err, "failed to create file %s", fullPath)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return apperror.IO(err, "failed to write file %s", fullPath)
	}
	if err := file.Close(); err != nil {
		return apperror.IO(err, "failed to close file %s", fullPath)
	}
	return nil
}

// checkLinks refuses directories that only lie below root before symlinks are resolved.
func (s *LocalSink) checkLinks(dir string) error {
	realRoot, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return apperror.Path(err, "storage root %s is not available", s.root)
	}
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return apperror.Path(err, "failed to resolve directory %s", dir)
	}
	if !utils.IsWithin(realRoot, realDir) {
		return apperror.Path(nil, "directory %s resolves outside %s", dir, s.root)
	}
	return nil
}

func (s *LocalSink) HealthCheck(ctx context.Context) map[string]string {
	return map[string]string{"storage": "healthy"}
}

func (s *LocalSink) Name() string {
	return "local"
}

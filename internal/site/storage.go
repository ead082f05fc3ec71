package site

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// artifactWriter abstracts the destination-tree operations the publisher
// performs so a dry run can log every action without touching disk.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
}

// newArtifactWriter returns a disk-backed writer, or a logging no-op when
// dryRun is set.
func newArtifactWriter(dryRun bool, logger interfaces.Logger) artifactWriter {
	if logger == nil {
		logger = logging.NoOp()
	}
	if dryRun {
		return &dryRunWriter{logger: logger}
	}
	return &diskWriter{logger: logger}
}

type diskWriter struct {
	logger interfaces.Logger
}

func (w *diskWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(path, 0o755)
}

func (w *diskWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	w.logger.Info("site.write", "path", path, "bytes", len(data))
	return os.WriteFile(path, data, 0o644)
}

func (w *diskWriter) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.logger.Info("site.remove", "path", path)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type dryRunWriter struct {
	logger interfaces.Logger
}

func (w *dryRunWriter) EnsureDir(ctx context.Context, path string) error {
	return ctx.Err()
}

func (w *dryRunWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.logger.Info("site.write.dry_run", "path", path, "bytes", len(data))
	return nil
}

func (w *dryRunWriter) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.logger.Info("site.remove.dry_run", "path", path)
	return nil
}

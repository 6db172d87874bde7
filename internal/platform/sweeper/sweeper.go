// Package sweeper periodically removes stale files from the upload
// directory. Uploaded files are normally deleted as soon as ingestion
// finishes; the sweeper catches files orphaned by crashes.
package sweeper

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// UploadSweeper deletes files in Dir older than MaxAge on a fixed interval.
type UploadSweeper struct {
	Dir    string
	MaxAge time.Duration
	Logger *slog.Logger

	cron *cron.Cron
}

// New creates an UploadSweeper for the given directory.
func New(dir string, maxAge time.Duration, logger *slog.Logger) *UploadSweeper {
	return &UploadSweeper{
		Dir:    dir,
		MaxAge: maxAge,
		Logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the sweep to run every interval. It returns an error if
// the schedule cannot be registered.
func (s *UploadSweeper) Start(interval time.Duration) error {
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule upload sweep: %w", err)
	}
	s.cron.Start()
	s.Logger.Info("Upload sweeper started",
		slog.String("dir", s.Dir),
		slog.String("interval", interval.String()),
		slog.String("max_age", s.MaxAge.String()))
	return nil
}

// Stop halts the schedule. Running sweeps finish before Stop returns.
func (s *UploadSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep removes every regular file in Dir whose modification time is older
// than MaxAge. A missing directory is not an error.
func (s *UploadSweeper) Sweep() {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		s.Logger.Error("Failed to read upload directory", slog.String("error", err.Error()))
		return
	}

	cutoff := time.Now().Add(-s.MaxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.Logger.Warn("Failed to remove stale upload", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		removed++
	}
	if removed > 0 {
		s.Logger.Info("Removed stale uploads", slog.Int("count", removed))
	}
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/tg-vidbot/internal/domain"
	"go.uber.org/zap"
)

// Orchestrator sequences a single retrieval: metadata extraction, preflight
// policy, fetch into the user's scoped directory, postflight policy. It owns
// the downloaded artifact until the path is handed back; the caller reads,
// sends and deletes the file and invokes CleanupUser afterwards.
type Orchestrator struct {
	extractor domain.Extractor
	policy    *domain.Policy
	baseDir   string
	logger    *zap.Logger
}

// NewOrchestrator creates a new retrieval orchestrator
func NewOrchestrator(extractor domain.Extractor, policy *domain.Policy, baseDir string, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		policy:    policy,
		baseDir:   baseDir,
		logger:    logger,
	}
}

// Execute runs the full retrieval sequence for one request and returns the
// artifact path. Every returned error carries a user-facing message; no
// partial file is left behind on any failure path.
func (o *Orchestrator) Execute(ctx context.Context, userID int64, url string, audioOnly bool, formatID string) (string, error) {
	info, err := o.extractor.ExtractInfo(ctx, url)
	if err != nil {
		return "", fmt.Errorf("could not extract video information: %w", err)
	}

	if err := o.policy.Preflight(info); err != nil {
		o.logger.Info("Download rejected by preflight policy",
			zap.Int64("user_id", userID),
			zap.String("url", url),
			zap.Float64("duration", info.Duration),
			zap.Int64("filesize", info.Filesize))
		return "", err
	}

	userDir := o.UserDir(userID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path, err := o.extractor.Fetch(ctx, url, userDir, audioOnly, formatID)
	if err != nil {
		o.CleanupUser(userID)
		return "", fmt.Errorf("download failed: %w", err)
	}

	// The extractor reports the exact artifact path; fall back to scanning
	// the scoped directory when it could not.
	if path == "" {
		path = latestMediaFile(userDir)
	}
	if path == "" || !fileExists(path) {
		o.CleanupUser(userID)
		return "", domain.ErrArtifactMissing
	}

	if err := o.policy.Postflight(path); err != nil {
		o.CleanupUser(userID)
		return "", err
	}

	o.logger.Info("Download completed",
		zap.Int64("user_id", userID),
		zap.String("url", url),
		zap.String("file", path))

	return path, nil
}

// ListFormats forwards quality options from the extraction library without
// re-ranking or deduplication.
func (o *Orchestrator) ListFormats(ctx context.Context, url string, audioOnly bool) ([]domain.FormatOption, error) {
	return o.extractor.ListFormats(ctx, url, audioOnly)
}

// UserDir returns the per-user scoped download directory.
func (o *Orchestrator) UserDir(userID int64) string {
	return filepath.Join(o.baseDir, fmt.Sprintf("user_%d", userID))
}

// CleanupUser removes all leftover files for a user and the scoped directory
// itself.
func (o *Orchestrator) CleanupUser(userID int64) {
	userDir := o.UserDir(userID)

	entries, err := os.ReadDir(userDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			os.Remove(filepath.Join(userDir, entry.Name()))
		}
	}
	if err := os.Remove(userDir); err == nil {
		o.logger.Debug("Cleaned up user directory", zap.Int64("user_id", userID))
	}
}

// latestMediaFile returns the most recently modified recognized media file
// in dir, or "" when none exists.
func latestMediaFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsMediaFile(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := fi.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(dir, entry.Name())
			newestMod = mod
		}
	}
	return newest
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

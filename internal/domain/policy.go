package domain

import (
	"fmt"
	"os"
)

// Policy enforces the duration and size ceilings around a fetch. The size
// ceiling matches the Telegram bot attachment limit.
type Policy struct {
	MaxDuration int   // seconds
	MaxFileSize int64 // bytes
}

// NewPolicy creates a policy from the download configuration.
func NewPolicy(config *DownloadConfig) *Policy {
	return &Policy{
		MaxDuration: config.MaxDurationSeconds,
		MaxFileSize: config.MaxFileSizeBytes,
	}
}

// Preflight checks extracted metadata before any bytes are fetched. Either
// limit is independently sufficient to reject. Absent or zero duration/size
// fields are unknown and pass; the postflight check is the authoritative
// size gate.
func (p *Policy) Preflight(info *MediaInfo) error {
	if info.Duration > 0 && info.Duration > float64(p.MaxDuration) {
		return &PolicyRejectionError{
			Reason: fmt.Sprintf("video is too long (max %d minutes allowed)", p.MaxDuration/60),
		}
	}

	size := info.Filesize
	if size == 0 {
		size = info.FilesizeApprox
	}
	if size > p.MaxFileSize {
		return &PolicyRejectionError{
			Reason: fmt.Sprintf("video file is too large (max %dMB allowed)", p.MaxFileSize/1024/1024),
		}
	}

	return nil
}

// Postflight re-checks the materialized artifact against the size ceiling.
// Metadata-reported sizes may be approximate or absent, so the measured size
// decides. On rejection the artifact is deleted before returning.
func (p *Policy) Postflight(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat downloaded file: %w", err)
	}

	if fi.Size() > p.MaxFileSize {
		os.Remove(path)
		return &PolicyRejectionError{
			Reason: fmt.Sprintf("downloaded file is too large (%.1fMB)", float64(fi.Size())/1024/1024),
		}
	}

	return nil
}

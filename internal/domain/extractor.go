package domain

import (
	"context"
	"path/filepath"
	"strings"
)

// MediaInfo is metadata extracted for a URL without fetching any bytes.
// Zero values mean the extractor did not report the field.
type MediaInfo struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Duration       float64 `json:"duration"` // seconds
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	Ext            string  `json:"ext"`
	Uploader       string  `json:"uploader"`
}

// Extractor defines the boundary to the media-extraction library.
type Extractor interface {
	// ExtractInfo obtains metadata for a URL without downloading.
	ExtractInfo(ctx context.Context, url string) (*MediaInfo, error)

	// ListFormats enumerates quality options for a URL, filtered to audio
	// or video formats. Order is the library's own quality ordering.
	ListFormats(ctx context.Context, url string, audioOnly bool) ([]FormatOption, error)

	// Fetch downloads media into destDir, optionally constrained to a
	// previously offered format, and returns the artifact path. An empty
	// path with a nil error means the extractor could not report the
	// path and the caller must locate the artifact itself.
	Fetch(ctx context.Context, url, destDir string, audioOnly bool, formatID string) (string, error)
}

// mediaExtensions are the artifact types recognized after a fetch.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".mov":  true,
	".flv":  true,
	".m4v":  true,
	".mp3":  true,
	".m4a":  true,
	".opus": true,
	".ogg":  true,
}

// IsMediaFile reports whether path has a recognized media extension.
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

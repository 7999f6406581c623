package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yourusername/tg-vidbot/internal/domain"
	"go.uber.org/zap"
)

// YTDLPExtractor implements domain.Extractor by invoking the yt-dlp binary.
// Note: exec.Command passes args directly to the process, no shell quoting
// needed.
type YTDLPExtractor struct {
	binary     string
	maxFormats int
	logger     *zap.Logger
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor
func NewYTDLPExtractor(config *domain.DownloadConfig, logger *zap.Logger) *YTDLPExtractor {
	return &YTDLPExtractor{
		binary:     config.YTDLPBinary,
		maxFormats: config.MaxFormatOptions,
		logger:     logger,
	}
}

// ytdlpInfo mirrors the fields of yt-dlp's -J output that this bot uses
type ytdlpInfo struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Duration       float64       `json:"duration"`
	Filesize       int64         `json:"filesize"`
	FilesizeApprox int64         `json:"filesize_approx"`
	Ext            string        `json:"ext"`
	Uploader       string        `json:"uploader"`
	Formats        []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID   string `json:"format_id"`
	FormatNote string `json:"format_note"`
	Ext        string `json:"ext"`
	VCodec     string `json:"vcodec"`
	ACodec     string `json:"acodec"`
}

// ExtractInfo obtains metadata for a URL without downloading any bytes.
func (e *YTDLPExtractor) ExtractInfo(ctx context.Context, url string) (*domain.MediaInfo, error) {
	out, err := e.run(ctx, "-J", "--no-playlist", url)
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(out)
	if err != nil {
		return nil, err
	}

	return &domain.MediaInfo{
		ID:             info.ID,
		Title:          info.Title,
		Duration:       info.Duration,
		Filesize:       info.Filesize,
		FilesizeApprox: info.FilesizeApprox,
		Ext:            info.Ext,
		Uploader:       info.Uploader,
	}, nil
}

// ListFormats enumerates quality options for a URL. The library's own format
// ordering is preserved; entries without a human-readable note are skipped
// because they cannot be labeled on a keyboard button.
func (e *YTDLPExtractor) ListFormats(ctx context.Context, url string, audioOnly bool) ([]domain.FormatOption, error) {
	out, err := e.run(ctx, "-J", "--no-playlist", url)
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(out)
	if err != nil {
		return nil, err
	}

	return filterFormats(info.Formats, audioOnly, e.maxFormats), nil
}

// Fetch downloads media into destDir and returns the exact artifact path as
// reported by yt-dlp. An empty path with nil error means yt-dlp printed
// nothing usable and the caller must locate the artifact itself.
func (e *YTDLPExtractor) Fetch(ctx context.Context, url, destDir string, audioOnly bool, formatID string) (string, error) {
	args := buildFetchArgs(destDir, audioOnly, formatID, url)

	e.logger.Debug("Running yt-dlp fetch",
		zap.String("binary", e.binary),
		zap.Strings("args", args))

	out, err := e.run(ctx, args...)
	if err != nil {
		return "", err
	}

	path := lastNonEmptyLine(out)
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// buildFetchArgs assembles the yt-dlp argument list for a fetch. Subtitles,
// thumbnails and info-json sidecars are all disabled; the artifact path is
// printed after any post-processing move so the caller gets the final name.
func buildFetchArgs(destDir string, audioOnly bool, formatID, url string) []string {
	args := []string{
		"--no-playlist",
		"--restrict-filenames",
		"--no-write-subs",
		"--no-write-auto-subs",
		"--no-write-thumbnail",
		"--no-write-info-json",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
	}

	switch {
	case audioOnly:
		args = append(args, "-x", "--audio-format", "mp3", "--audio-quality", "192K")
		if formatID != "" {
			args = append(args, "-f", formatID)
		}
	case formatID != "":
		args = append(args, "-f", formatID)
	default:
		// Prefer files under the attachment limit
		args = append(args, "-f", "best[filesize<50M]/best")
	}

	return append(args, url)
}

// filterFormats keeps the formats matching the chosen media kind, up to max
// entries. No re-ranking and no deduplication, the library's order stands.
func filterFormats(formats []ytdlpFormat, audioOnly bool, max int) []domain.FormatOption {
	var options []domain.FormatOption
	for _, f := range formats {
		if f.FormatNote == "" {
			continue
		}
		isAudio := f.VCodec == "none" && f.ACodec != "none"
		if audioOnly != isAudio {
			continue
		}
		options = append(options, domain.FormatOption{
			ID:   f.FormatID,
			Note: f.FormatNote,
			Ext:  f.Ext,
		})
		if max > 0 && len(options) >= max {
			break
		}
	}
	return options
}

// parseInfo decodes yt-dlp -J output
func parseInfo(out []byte) (*ytdlpInfo, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return &info, nil
}

// run executes yt-dlp and returns its stdout. On failure the error carries
// the tail of stderr, which is where yt-dlp explains itself.
func (e *YTDLPExtractor) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := lastNonEmptyLine(stderr.Bytes())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("yt-dlp failed: %s", detail)
	}

	return stdout.Bytes(), nil
}

// lastNonEmptyLine returns the last non-blank line of out
func lastNonEmptyLine(out []byte) string {
	lines := strings.Split(string(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

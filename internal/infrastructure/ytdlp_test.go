package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInfoJSON = `{
	"id": "abc123",
	"title": "Test Clip",
	"duration": 120.5,
	"filesize": 10485760,
	"ext": "mp4",
	"uploader": "someone",
	"formats": [
		{"format_id": "sb0", "format_note": "storyboard", "ext": "mhtml", "vcodec": "none", "acodec": "none"},
		{"format_id": "139", "format_note": "low", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.5"},
		{"format_id": "140", "format_note": "medium", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2"},
		{"format_id": "160", "format_note": "144p", "ext": "mp4", "vcodec": "avc1", "acodec": "none"},
		{"format_id": "18", "format_note": "360p", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a.40.2"},
		{"format_id": "22", "format_note": "720p", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a.40.2"},
		{"format_id": "303", "ext": "webm", "vcodec": "vp9", "acodec": "none"}
	]
}`

func TestParseInfo(t *testing.T) {
	info, err := parseInfo([]byte(sampleInfoJSON))
	require.NoError(t, err)

	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "Test Clip", info.Title)
	assert.Equal(t, 120.5, info.Duration)
	assert.Equal(t, int64(10485760), info.Filesize)
	assert.Equal(t, "someone", info.Uploader)
	assert.Len(t, info.Formats, 7)
}

func TestParseInfo_InvalidJSON(t *testing.T) {
	_, err := parseInfo([]byte("ERROR: unsupported url"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse yt-dlp output")
}

func TestFilterFormats_Video(t *testing.T) {
	info, err := parseInfo([]byte(sampleInfoJSON))
	require.NoError(t, err)

	options := filterFormats(info.Formats, false, 8)

	// Video formats with a note, in library order; storyboard, audio-only
	// and note-less entries are excluded.
	require.Len(t, options, 3)
	assert.Equal(t, "160", options[0].ID)
	assert.Equal(t, "144p", options[0].Note)
	assert.Equal(t, "18", options[1].ID)
	assert.Equal(t, "22", options[2].ID)
	assert.Equal(t, "mp4", options[2].Ext)
}

func TestFilterFormats_Audio(t *testing.T) {
	info, err := parseInfo([]byte(sampleInfoJSON))
	require.NoError(t, err)

	options := filterFormats(info.Formats, true, 8)

	require.Len(t, options, 2)
	assert.Equal(t, "139", options[0].ID)
	assert.Equal(t, "140", options[1].ID)
	assert.Equal(t, "m4a", options[1].Ext)
}

func TestFilterFormats_Cap(t *testing.T) {
	info, err := parseInfo([]byte(sampleInfoJSON))
	require.NoError(t, err)

	options := filterFormats(info.Formats, false, 2)
	assert.Len(t, options, 2)
}

func TestBuildFetchArgs_Default(t *testing.T) {
	args := buildFetchArgs("/tmp/user_42", false, "", "https://vimeo.com/12345")

	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "--no-write-info-json")
	assert.Contains(t, args, "--no-simulate")
	assert.Contains(t, args, filepath.Join("/tmp/user_42", "%(title)s.%(ext)s"))
	assert.Contains(t, args, "best[filesize<50M]/best")
	assert.Equal(t, "https://vimeo.com/12345", args[len(args)-1])
}

func TestBuildFetchArgs_SpecificFormat(t *testing.T) {
	args := buildFetchArgs("/tmp/user_42", false, "22", "https://youtu.be/abc")

	assert.Contains(t, args, "-f")
	assert.Contains(t, args, "22")
	assert.NotContains(t, args, "best[filesize<50M]/best")
	assert.NotContains(t, args, "-x")
}

func TestBuildFetchArgs_AudioOnly(t *testing.T) {
	args := buildFetchArgs("/tmp/user_42", true, "140", "https://youtu.be/abc")

	assert.Contains(t, args, "-x")
	assert.Contains(t, args, "mp3")
	assert.Contains(t, args, "140")
}

func TestLastNonEmptyLine(t *testing.T) {
	assert.Equal(t, "/tmp/user_42/clip.mp4",
		lastNonEmptyLine([]byte("warning: something\n/tmp/user_42/clip.mp4\n\n")))
	assert.Equal(t, "", lastNonEmptyLine([]byte("\n  \n")))
	assert.Equal(t, "", lastNonEmptyLine(nil))
}

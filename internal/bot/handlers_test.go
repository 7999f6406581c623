package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tg-vidbot/internal/app"
	"github.com/yourusername/tg-vidbot/internal/domain"
	"go.uber.org/zap"
)

// fakeSender records everything the handlers push to Telegram
type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// texts collects the user-visible strings from sent messages and edits
func (f *fakeSender) texts() []string {
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

// stubExtractor implements domain.Extractor with pluggable behavior
type stubExtractor struct {
	info        *domain.MediaInfo
	infoErr     error
	formats     []domain.FormatOption
	formatsErr  error
	fetch       func(destDir string) (string, error)
	fetchCalled bool
}

func (s *stubExtractor) ExtractInfo(ctx context.Context, url string) (*domain.MediaInfo, error) {
	return s.info, s.infoErr
}

func (s *stubExtractor) ListFormats(ctx context.Context, url string, audioOnly bool) ([]domain.FormatOption, error) {
	return s.formats, s.formatsErr
}

func (s *stubExtractor) Fetch(ctx context.Context, url, destDir string, audioOnly bool, formatID string) (string, error) {
	s.fetchCalled = true
	if s.fetch == nil {
		return "", nil
	}
	return s.fetch(destDir)
}

func newTestBot(t *testing.T, extractor domain.Extractor) (*Bot, *fakeSender) {
	t.Helper()
	policy := domain.NewPolicy(&domain.DownloadConfig{
		MaxDurationSeconds: 600,
		MaxFileSizeBytes:   50 * 1024 * 1024,
	})
	sender := &fakeSender{}
	b := &Bot{
		api:          sender,
		store:        app.NewSessionStore(),
		orchestrator: app.NewOrchestrator(extractor, policy, t.TempDir(), zap.NewNop()),
		logger:       zap.NewNop(),
	}
	return b, sender
}

func textMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
	}
}

func callbackQuery(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: userID},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: userID},
		},
	}
}

func TestHandleMessage_InvalidURL_NoSession(t *testing.T) {
	extractor := &stubExtractor{}
	b, sender := newTestBot(t, extractor)

	b.handleMessage(textMessage(42, "definitely not a url"))

	assert.Contains(t, sender.texts(), "❌ Invalid URL. Please send a video link.")
	assert.Equal(t, 0, b.store.Len(), "invalid input must not create a session")
	assert.False(t, extractor.fetchCalled)
}

func TestHandleMessage_YouTube_PromptsFormat(t *testing.T) {
	extractor := &stubExtractor{}
	b, sender := newTestBot(t, extractor)

	b.handleMessage(textMessage(42, "https://youtu.be/dQw4w9WgXcQ"))

	assert.Contains(t, sender.texts(), "Choose format:")
	session, ok := b.store.Get(42)
	require.True(t, ok)
	assert.Equal(t, domain.PlatformYouTube, session.Platform)
	assert.False(t, session.KindChosen)
	assert.False(t, extractor.fetchCalled, "selection flow must not fetch yet")
}

func TestHandleMessage_DirectDownload(t *testing.T) {
	var artifact string
	extractor := &stubExtractor{
		info: &domain.MediaInfo{Title: "clip", Duration: 120},
		fetch: func(destDir string) (string, error) {
			artifact = filepath.Join(destDir, "clip.mp4")
			require.NoError(t, os.WriteFile(artifact, []byte("data"), 0644))
			return artifact, nil
		},
	}
	b, sender := newTestBot(t, extractor)

	b.handleMessage(textMessage(42, "https://vimeo.com/12345"))

	assert.True(t, extractor.fetchCalled)
	assert.Equal(t, 0, b.store.Len(), "session must be gone after the download")
	assert.NoFileExists(t, artifact, "artifact is single-use")

	var sentVideo bool
	for _, c := range sender.sent {
		if _, ok := c.(tgbotapi.VideoConfig); ok {
			sentVideo = true
		}
	}
	assert.True(t, sentVideo)
}

func TestHandleMessage_PolicyRejectionEndsSession(t *testing.T) {
	extractor := &stubExtractor{
		info: &domain.MediaInfo{Duration: 900},
	}
	b, sender := newTestBot(t, extractor)

	b.handleMessage(textMessage(42, "https://vimeo.com/12345"))

	texts := sender.texts()
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[len(texts)-1], "10 minutes")
	assert.Equal(t, 0, b.store.Len(), "rejection is terminal for the session")
	assert.False(t, extractor.fetchCalled)
}

func TestHandleCallback_NoSession_Expired(t *testing.T) {
	extractor := &stubExtractor{}
	b, sender := newTestBot(t, extractor)

	b.handleCallback(callbackQuery(42, "format_22"))

	assert.Contains(t, sender.texts(), sessionExpiredText)
	assert.False(t, extractor.fetchCalled, "no session means no fetch")
}

func TestHandleCallback_FormatBeforeKindChoice(t *testing.T) {
	extractor := &stubExtractor{}
	b, sender := newTestBot(t, extractor)
	b.store.Begin(42, "https://youtu.be/abc", domain.PlatformYouTube)

	b.handleCallback(callbackQuery(42, "format_22"))

	assert.Contains(t, sender.texts(), sessionExpiredText)
	assert.False(t, extractor.fetchCalled)
}

func TestHandleCallback_KindChoice_ShowsQualityOptions(t *testing.T) {
	extractor := &stubExtractor{
		formats: []domain.FormatOption{
			{ID: "18", Note: "360p", Ext: "mp4"},
			{ID: "22", Note: "720p", Ext: "mp4"},
		},
	}
	b, sender := newTestBot(t, extractor)
	b.store.Begin(42, "https://youtu.be/abc", domain.PlatformYouTube)

	b.handleCallback(callbackQuery(42, callbackMP4))

	assert.Contains(t, sender.texts(), "Select quality:")
	session, ok := b.store.Get(42)
	require.True(t, ok)
	assert.True(t, session.KindChosen)
	assert.Len(t, session.Formats, 2)
}

func TestHandleCallback_KindChoice_NoFormatsEndsSession(t *testing.T) {
	extractor := &stubExtractor{formatsErr: errors.New("extraction failed")}
	b, sender := newTestBot(t, extractor)
	b.store.Begin(42, "https://youtu.be/abc", domain.PlatformYouTube)

	b.handleCallback(callbackQuery(42, callbackMP4))

	assert.Contains(t, sender.texts(), "Failed to retrieve quality options.")
	assert.Equal(t, 0, b.store.Len())
}

func TestHandleCallback_NilMessage(t *testing.T) {
	extractor := &stubExtractor{}
	b, sender := newTestBot(t, extractor)
	b.store.Begin(42, "https://youtu.be/abc", domain.PlatformYouTube)

	query := &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: 42},
		Data: "format_22",
	}
	require.NotPanics(t, func() { b.handleCallback(query) })

	assert.Contains(t, sender.texts(), sessionExpiredText)
	assert.Equal(t, 0, b.store.Len())
	assert.False(t, extractor.fetchCalled)
}

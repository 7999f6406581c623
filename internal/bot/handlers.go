package bot

import (
	"context"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/tg-vidbot/internal/domain"
	"go.uber.org/zap"
)

const (
	welcomeText = "Welcome! Send me a video link (YouTube, Instagram, TikTok, etc).\n" +
		"For YouTube, I'll ask if you want MP4 or MP3, and then show quality options."
	helpText           = "Just send a video link. For YouTube, you can choose format and quality."
	sessionExpiredText = "Session expired. Please send the URL again."
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
		reply.ReplyMarkup = helpKeyboard()
		if _, err := b.api.Send(reply); err != nil {
			b.logger.Error("Failed to send welcome", zap.Error(err))
		}
	case "help":
		b.sendText(msg.Chat.ID, helpText)
	}
}

// handleMessage treats any free-text message as a candidate video URL.
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	rawURL := strings.TrimSpace(msg.Text)
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !domain.ValidateURL(rawURL) {
		b.sendText(chatID, "❌ Invalid URL. Please send a video link.")
		return
	}

	platform := domain.ClassifyURL(rawURL)
	b.store.Begin(userID, rawURL, platform)

	b.logger.Info("URL received",
		zap.Int64("user_id", userID),
		zap.String("platform", string(platform)))

	// Only YouTube gets the format/quality selection flow; every other
	// platform downloads directly.
	if platform == domain.PlatformYouTube {
		prompt := tgbotapi.NewMessage(chatID, "Choose format:")
		prompt.ReplyMarkup = kindKeyboard()
		if _, err := b.api.Send(prompt); err != nil {
			b.logger.Error("Failed to send format prompt", zap.Error(err))
		}
		return
	}

	b.processDownload(chatID, userID, rawURL, platform, false, "")
}

// handleCallback handles the interactive keyboard presses. Any callback for
// a user with no pending session short-circuits to the session-expired
// reply, the sole recovery path.
func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	// Acknowledge the button press so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	// Telegram omits the message for callbacks on messages too old to echo
	// back. There is nothing to edit, so treat it as an expired session.
	if query.Message == nil {
		b.store.Delete(userID)
		b.sendText(userID, sessionExpiredText)
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	if query.Data == callbackHelp {
		b.editText(chatID, messageID, "Send me a video URL. I'll download it for you.")
		return
	}

	session, ok := b.store.Get(userID)
	if !ok {
		b.editText(chatID, messageID, sessionExpiredText)
		return
	}

	switch {
	case query.Data == callbackMP4 || query.Data == callbackMP3:
		b.handleKindChoice(chatID, messageID, userID, session, query.Data == callbackMP3)

	case strings.HasPrefix(query.Data, callbackFormatPrefix):
		formatID, ok := ParseFormatCallback(query.Data)
		if !ok || !session.KindChosen {
			b.editText(chatID, messageID, sessionExpiredText)
			return
		}
		b.editText(chatID, messageID, "Downloading...")
		b.processDownload(chatID, userID, session.URL, session.Platform, session.AudioOnly, formatID)

	default:
		b.logger.Warn("Unknown callback", zap.String("data", query.Data))
	}
}

// handleKindChoice fetches the quality options for the chosen media kind and
// presents them.
func (b *Bot) handleKindChoice(chatID int64, messageID int, userID int64, session domain.Session, audioOnly bool) {
	formats, err := b.orchestrator.ListFormats(context.Background(), session.URL, audioOnly)
	if err != nil || len(formats) == 0 {
		if err != nil {
			b.logger.Error("Failed to list formats", zap.String("url", session.URL), zap.Error(err))
		}
		b.editText(chatID, messageID, "Failed to retrieve quality options.")
		b.store.Delete(userID)
		return
	}

	if err := b.store.SetKind(userID, audioOnly, formats); err != nil {
		b.editText(chatID, messageID, sessionExpiredText)
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Select quality:", qualityKeyboard(formats))
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("Failed to send quality options", zap.Error(err))
	}
}

// processDownload runs one retrieval end to end and delivers the outcome.
// The session is removed on every terminal outcome, success or not.
func (b *Bot) processDownload(chatID, userID int64, url string, platform domain.Platform, audioOnly bool, formatID string) {
	defer b.store.Delete(userID)

	request := domain.NewRequest(userID, url, platform, audioOnly, formatID)
	b.recordCreate(request)

	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadVideo)); err != nil {
		b.logger.Warn("Failed to send chat action", zap.Error(err))
	}

	path, err := b.orchestrator.Execute(context.Background(), userID, url, audioOnly, formatID)
	if err != nil {
		b.sendText(chatID, "❌ Error: "+err.Error())
		if domain.IsPolicyRejection(err) {
			request.MarkRejected(err.Error())
		} else {
			request.MarkFailed(err)
		}
		b.recordUpdate(request)
		return
	}

	var size int64
	if fi, statErr := os.Stat(path); statErr == nil {
		size = fi.Size()
	}

	sendErr := b.sendMedia(chatID, path, audioOnly)

	// The artifact is single-use: delete it and the scoped directory
	// whether or not the hand-off succeeded.
	os.Remove(path)
	b.orchestrator.CleanupUser(userID)

	if sendErr != nil {
		b.logger.Error("Failed to send file",
			zap.Int64("user_id", userID),
			zap.String("file", path),
			zap.Error(sendErr))
		b.sendText(chatID, "❌ Failed to send file.")
		request.MarkFailed(sendErr)
	} else {
		request.MarkCompleted(size)
	}
	b.recordUpdate(request)
}

// sendMedia hands the artifact to Telegram as audio or streamable video.
func (b *Bot) sendMedia(chatID int64, path string, audioOnly bool) error {
	if audioOnly {
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
		_, err := b.api.Send(audio)
		return err
	}

	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.SupportsStreaming = true
	_, err := b.api.Send(video)
	return err
}

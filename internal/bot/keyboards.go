package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/tg-vidbot/internal/domain"
)

// Callback action tags. format_<id> carries the chosen format identifier.
const (
	callbackHelp         = "help"
	callbackMP4          = "yt_mp4"
	callbackMP3          = "yt_mp3"
	callbackFormatPrefix = "format_"
)

func helpKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Help", callbackHelp),
		),
	)
}

// kindKeyboard offers the MP4/MP3 choice for YouTube links.
func kindKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎞 MP4 (video)", callbackMP4),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎵 MP3 (audio)", callbackMP3),
		),
	)
}

// qualityKeyboard lists the offered formats, one per row, labeled by note
// and container extension.
func qualityKeyboard(formats []domain.FormatOption) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(formats))
	for _, f := range formats {
		label := fmt.Sprintf("%s - %s", f.Note, f.Ext)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackFormatPrefix+f.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ParseFormatCallback extracts the format identifier from a format_<id>
// callback tag.
func ParseFormatCallback(data string) (string, bool) {
	if !strings.HasPrefix(data, callbackFormatPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(data, callbackFormatPrefix)
	if id == "" {
		return "", false
	}
	return id, true
}

package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/tg-vidbot/internal/app"
	"github.com/yourusername/tg-vidbot/internal/domain"
	"go.uber.org/zap"
)

// telegramSender is the outbound surface of the Telegram client the handlers
// use. The polling loop needs the concrete client; the handlers only send.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot wires the Telegram transport to the session store and the retrieval
// orchestrator. One goroutine per inbound update; flows for distinct users
// are independent because sessions and download directories are keyed by
// user ID.
type Bot struct {
	api          telegramSender
	client       *tgbotapi.BotAPI
	store        *app.SessionStore
	orchestrator *app.Orchestrator
	repo         domain.RequestRepository // nil when history is disabled
	logger       *zap.Logger
	pollTimeout  int
}

// New creates the bot and authenticates against the Telegram API.
func New(
	config *domain.TelegramConfig,
	store *app.SessionStore,
	orchestrator *app.Orchestrator,
	repo domain.RequestRepository,
	logger *zap.Logger,
) (*Bot, error) {
	client, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate bot: %w", err)
	}

	return &Bot{
		api:          client,
		client:       client,
		store:        store,
		orchestrator: orchestrator,
		repo:         repo,
		logger:       logger,
		pollTimeout:  config.PollTimeout,
	}, nil
}

// Run starts the long-polling receive loop and blocks until the updates
// channel is closed by Stop.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.client.GetUpdatesChan(u)

	b.logger.Info("Bot started",
		zap.String("username", b.client.Self.UserName),
		zap.Int("poll_timeout", b.pollTimeout))

	for update := range updates {
		go b.dispatch(update)
	}
}

// Stop ends the receive loop
func (b *Bot) Stop() {
	b.client.StopReceivingUpdates()
}

// dispatch routes one update to its handler. A panic in any handler is
// logged and answered with a generic failure message; it must never
// terminate the receive loop for other users.
func (b *Bot) dispatch(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic in update handler", zap.Any("error", r))
			if chat := update.FromChat(); chat != nil {
				b.sendText(chat.ID, "❌ Something went wrong. Please try again.")
			}
		}
	}()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

// sendText sends a plain text message, logging delivery failures.
func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// editText replaces the text of a previously sent interactive message.
func (b *Bot) editText(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.logger.Error("Failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// recordCreate persists a new request record when history is enabled.
func (b *Bot) recordCreate(request *domain.Request) {
	if b.repo == nil {
		return
	}
	if err := b.repo.Create(request); err != nil {
		b.logger.Error("Failed to record request", zap.String("id", request.ID), zap.Error(err))
	}
}

// recordUpdate persists a request's terminal outcome when history is enabled.
func (b *Bot) recordUpdate(request *domain.Request) {
	if b.repo == nil {
		return
	}
	if err := b.repo.Update(request); err != nil {
		b.logger.Error("Failed to update request record", zap.String("id", request.ID), zap.Error(err))
	}
}

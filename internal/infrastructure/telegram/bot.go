// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/config"
)

// PollTimeout is the long-polling timeout for getUpdates
const PollTimeout = time.Minute

// UnknownCommandMessage is sent for commands no handler matches
const UnknownCommandMessage = "🤖 Lệnh không hợp lệ. Gõ /help để xem danh sách lệnh."

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot    *tgbot.Bot
	logger zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper.
// Only updates from the configured owner reach any handler.
func NewBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	// bounds every API request, video uploads included
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	opts := []tgbot.Option{
		tgbot.WithMiddlewares(OwnerOnly(cfg.OwnerID, logger)),
		tgbot.WithDefaultHandler(defaultHandler),
		tgbot.WithHTTPClient(PollTimeout, client),
		tgbot.WithErrorsHandler(func(err error) {
			logger.Error().Err(err).Msg("Telegram bot error")
		}),
		tgbot.WithSkipGetMe(),
	}

	bot, err := tgbot.New(cfg.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info().Int64("owner_id", cfg.OwnerID).Msg("Telegram bot created successfully")

	return &Bot{
		bot:    bot,
		logger: logger,
	}, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// Start starts the bot (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Msg("Starting Telegram bot in polling mode...")
	b.bot.Start(ctx)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

// defaultHandler answers commands that no route matched
func defaultHandler(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if !isUnknownCommand(update) {
		return
	}

	_, _ = bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   UnknownCommandMessage,
	})
}

func isUnknownCommand(update *models.Update) bool {
	return update.Message != nil && strings.HasPrefix(strings.TrimSpace(update.Message.Text), "/")
}

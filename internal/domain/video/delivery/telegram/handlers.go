// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/dto"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/usecase/buissines"
)

// Constants for Telegram API
const (
	MaxMessageLength = 4096
	RequestTimeout   = 30 * time.Second
)

// Handlers contains Telegram command handlers
// Implements deps.ChatTransport interface
type Handlers struct {
	uc     *buissines.UseCase
	bot    *tgbot.Bot
	logger zerolog.Logger

	inflight sync.WaitGroup
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, bot *tgbot.Bot, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		bot:    bot,
		logger: logger,
	}
}

// SendMessage implements deps.Messenger interface
func (h *Handlers) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	if text == "" {
		h.logger.Warn().Int64("chat_id", chatID).Msg("Attempt to send empty message")
		return 0, fmt.Errorf("message text cannot be empty")
	}
	if runes := []rune(text); len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	msg, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	return msg.ID, nil
}

// EditMessageText implements deps.Messenger interface
func (h *Handlers) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}

	return nil
}

// DeleteMessage implements deps.Messenger interface
func (h *Handlers) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// SendVideo implements deps.VideoUploader interface.
// Uploads are bounded by the bot HTTP client timeout, not RequestTimeout.
func (h *Handlers) SendVideo(ctx context.Context, chatID int64, filename string, video io.Reader) error {
	h.logger.Debug().Int64("chat_id", chatID).Str("filename", filename).Msg("Uploading video")

	_, err := h.bot.SendVideo(ctx, &tgbot.SendVideoParams{
		ChatID:            chatID,
		Video:             &models.InputFileUpload{Filename: filename, Data: video},
		SupportsStreaming: true,
	})
	if err != nil {
		return err
	}

	return nil
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logCommand(userID, "/start", "processing")

	req := &dto.CommandRequest{
		UserID:   userID,
		ChatID:   chatID,
		Username: update.Message.From.Username,
	}

	resp, err := h.uc.HandleStart(ctx, req)
	if err != nil {
		h.logError(userID, "/start", err)
		h.sendResponse(ctx, chatID, "❌ Có lỗi xảy ra khi xử lý lệnh /start")
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(userID, "/start", "success")
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logCommand(userID, "/help", "processing")

	resp, err := h.uc.HandleHelp(ctx)
	if err != nil {
		h.logError(userID, "/help", err)
		h.sendResponse(ctx, chatID, "❌ Có lỗi xảy ra khi xử lý lệnh /help")
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(userID, "/help", "success")
}

// HandleStatus handles /status command
func (h *Handlers) HandleStatus(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logCommand(userID, "/status", "processing")

	resp, err := h.uc.HandleStatus(ctx)
	if err != nil {
		h.logError(userID, "/status", err)
		h.sendResponse(ctx, chatID, "❌ Có lỗi xảy ra khi xử lý lệnh /status")
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(userID, "/status", "success")
}

// HandleText handles plain text messages that may carry a video link.
// An in-flight request is not aborted when the bot shuts down.
func (h *Handlers) HandleText(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	h.logger.Info().
		Int64("user_id", userID).
		Str("text", preview(text, 50)).
		Msg("Received message")

	req := &dto.VideoRequest{
		UserID: userID,
		ChatID: chatID,
		Text:   text,
	}

	done := h.track()
	defer done()

	result, err := h.uc.HandleVideoLink(context.WithoutCancel(ctx), req)
	if err != nil {
		h.logError(userID, "video", err)
		return
	}

	h.logger.Info().
		Int64("user_id", userID).
		Str("platform", result.Platform).
		Bool("delivered", result.Delivered).
		Msg("Video request finished")
}

// track registers an in-flight video request; call the result when it ends
func (h *Handlers) track() func() {
	h.inflight.Add(1)
	return h.inflight.Done
}

// Wait blocks until in-flight video requests finish or ctx is done
func (h *Handlers) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		h.logger.Warn().Err(ctx.Err()).Msg("Stopped waiting for in-flight video requests")
		return ctx.Err()
	}
}

func (h *Handlers) sendResponse(ctx context.Context, chatID int64, text string) {
	if _, err := h.SendMessage(ctx, chatID, text); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send response")
	}
}

func (h *Handlers) logCommand(userID int64, command, status string) {
	h.logger.Info().
		Int64("user_id", userID).
		Str("command", command).
		Str("status", status).
		Msg("Processing command")
}

func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().
		Err(err).
		Int64("user_id", userID).
		Str("command", command).
		Msg("Command failed")
}

// preview truncates text to at most n runes for logging
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

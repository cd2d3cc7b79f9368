// Package progress maintains the status message shown while a video is processed
package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/deps"
)

// Default progress messages
const (
	TextDownloading = "Đang tải video..."
	TextSending     = "Đang gửi video..."
	TextCompleted   = "Hoàn tất!"
	TextError       = "Có lỗi xảy ra"
	ErrorPrefix     = "❌ "
)

// Manager sends, edits and deletes status messages. Edit and delete failures
// are logged and reported as false, never returned.
type Manager struct {
	messenger deps.Messenger
	logger    zerolog.Logger
}

// NewManager creates a new progress Manager
func NewManager(messenger deps.Messenger, logger zerolog.Logger) *Manager {
	return &Manager{
		messenger: messenger,
		logger:    logger.With().Str("component", "progress").Logger(),
	}
}

// SetMessenger sets the Messenger after construction
func (m *Manager) SetMessenger(messenger deps.Messenger) {
	m.messenger = messenger
}

// SendProgress sends a new status message and returns its ID
func (m *Manager) SendProgress(ctx context.Context, chatID int64, text string) (messageID int, err error) {
	if m.messenger == nil {
		return 0, fmt.Errorf("messenger is not set")
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn().Interface("panic", r).Int64("chat_id", chatID).Msg("Progress message send panicked")
			messageID, err = 0, fmt.Errorf("failed to send progress message: %v", r)
		}
	}()

	m.logger.Debug().Int64("chat_id", chatID).Str("text", text).Msg("Sending progress message")

	messageID, err = m.messenger.SendMessage(ctx, chatID, text)
	if err != nil {
		return 0, fmt.Errorf("failed to send progress message: %w", err)
	}

	m.logger.Info().Int64("chat_id", chatID).Int("message_id", messageID).Msg("Progress message sent")
	return messageID, nil
}

// UpdateProgress replaces the text of a status message
func (m *Manager) UpdateProgress(ctx context.Context, chatID int64, messageID int, text string) (ok bool) {
	if m.messenger == nil {
		return false
	}

	defer m.recoverCall("update", chatID, messageID, &ok)

	if err := m.messenger.EditMessageText(ctx, chatID, messageID, text); err != nil {
		// the message may be gone or the text unchanged
		m.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Failed to update progress message")
		return false
	}

	m.logger.Debug().Int64("chat_id", chatID).Int("message_id", messageID).Str("text", text).Msg("Progress message updated")
	return true
}

// DeleteProgress deletes a status message
func (m *Manager) DeleteProgress(ctx context.Context, chatID int64, messageID int) (ok bool) {
	if m.messenger == nil {
		return false
	}

	defer m.recoverCall("delete", chatID, messageID, &ok)

	if err := m.messenger.DeleteMessage(ctx, chatID, messageID); err != nil {
		m.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Failed to delete progress message")
		return false
	}

	m.logger.Info().Int64("chat_id", chatID).Int("message_id", messageID).Msg("Progress message deleted")
	return true
}

// recoverCall turns a panicking edit or delete into a false result
func (m *Manager) recoverCall(op string, chatID int64, messageID int, ok *bool) {
	if r := recover(); r != nil {
		m.logger.Warn().
			Interface("panic", r).
			Str("op", op).
			Int64("chat_id", chatID).
			Int("message_id", messageID).
			Msg("Progress message call panicked")
		*ok = false
	}
}

// SendDownloading sends the initial "downloading" status message
func (m *Manager) SendDownloading(ctx context.Context, chatID int64) (int, error) {
	return m.SendProgress(ctx, chatID, TextDownloading)
}

// DownloadingText renders the status text for percent, clamped to [0, 100]
func DownloadingText(percent float64) string {
	percent = math.Max(0, math.Min(100, percent))
	return fmt.Sprintf("%s %d%%", TextDownloading, int(math.Round(percent)))
}

// UpdateDownloadingPercent shows the download percentage
func (m *Manager) UpdateDownloadingPercent(ctx context.Context, chatID int64, messageID int, percent float64) bool {
	return m.UpdateProgress(ctx, chatID, messageID, DownloadingText(percent))
}

// UpdateSending switches the status message to "sending"
func (m *Manager) UpdateSending(ctx context.Context, chatID int64, messageID int) bool {
	return m.UpdateProgress(ctx, chatID, messageID, TextSending)
}

// FinalizeProgress deletes the status message, or replaces it with
// finalText (TextCompleted when empty) if remove is false
func (m *Manager) FinalizeProgress(ctx context.Context, chatID int64, messageID int, remove bool, finalText string) bool {
	if remove {
		return m.DeleteProgress(ctx, chatID, messageID)
	}
	if finalText == "" {
		finalText = TextCompleted
	}
	return m.UpdateProgress(ctx, chatID, messageID, finalText)
}

// Package sender delivers downloaded videos to the chat and owns their cleanup
package sender

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/deps"
	videoerrors "github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/errors"
	pkgerrors "github.com/Conte777/NewsFlow/services/video-bot/pkg/errors"
)

// DefaultMaxFileSize is the Telegram Bot API upload limit
const DefaultMaxFileSize = 50 * 1024 * 1024

const bytesPerMB = 1024 * 1024

// Service sends video files and removes them afterwards
type Service struct {
	uploader deps.VideoUploader
	logger   zerolog.Logger
}

// NewService creates a new delivery Service
func NewService(uploader deps.VideoUploader, logger zerolog.Logger) *Service {
	return &Service{
		uploader: uploader,
		logger:   logger.With().Str("component", "sender").Logger(),
	}
}

// SetUploader sets the VideoUploader after construction
func (s *Service) SetUploader(uploader deps.VideoUploader) {
	s.uploader = uploader
}

// TooLargeMessage formats the oversize rejection shown to the user
func TooLargeMessage(size, maxSize int64) string {
	return fmt.Sprintf(
		"Video quá lớn (%.1fMB > %.0fMB). Vui lòng thử giảm chất lượng hoặc cắt video ngắn hơn.",
		float64(size)/bytesPerMB, float64(maxSize)/bytesPerMB,
	)
}

// Send uploads the file at filePath to chatID. The file is removed before
// Send returns, whatever the outcome. A nil error means the video was sent;
// otherwise the error text is suitable for the user.
func (s *Service) Send(ctx context.Context, chatID int64, filePath string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	log := s.logger.With().Int64("chat_id", chatID).Str("file_path", filePath).Logger()

	defer func() {
		if !Cleanup(filePath, log) {
			log.Warn().Msg("Temporary file was not removed")
		}
	}()

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.Error().Msg("File does not exist")
		return videoerrors.ErrFileMissing
	}

	size, err := FileSize(filePath)
	if err != nil {
		log.Error().Err(err).Msg("Cannot read file size")
		return videoerrors.ErrFileSizeUnreadable
	}

	if !IsFileSizeValid(size, maxSize) {
		log.Warn().Int64("size_bytes", size).Int64("max_size", maxSize).Msg("File too large")
		return pkgerrors.NewTooLargeError(TooLargeMessage(size, maxSize), size, maxSize)
	}

	if s.uploader == nil {
		log.Error().Msg("VideoUploader is not set")
		return videoerrors.ErrSenderNotSet
	}

	file, err := os.Open(filePath)
	if err != nil {
		log.Error().Err(err).Msg("Cannot open file")
		return pkgerrors.NewTransportError("Lỗi khi gửi video", err)
	}

	log.Info().Int64("size_bytes", size).Msgf("Sending video (%.1fMB)", float64(size)/bytesPerMB)

	sendErr := s.sendAndClose(ctx, chatID, file)
	if sendErr != nil {
		log.Error().Err(sendErr).Msg("Failed to send video")
		return pkgerrors.NewTransportError("Lỗi khi gửi video", sendErr)
	}

	log.Info().Msg("Video sent successfully")
	return nil
}

// sendAndClose closes the file before the deferred cleanup runs
func (s *Service) sendAndClose(ctx context.Context, chatID int64, file *os.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		if closeErr := file.Close(); closeErr != nil {
			s.logger.Debug().Err(closeErr).Msg("Failed to close video file")
		}
	}()

	return s.uploader.SendVideo(ctx, chatID, filepath.Base(file.Name()), file)
}

// Package buissines contains business logic for the video domain
package buissines

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/config"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/consts"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/deps"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/downloader"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/dto"
	videoerrors "github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/errors"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/linkparser"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/progress"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/sender"
	pkgerrors "github.com/Conte777/NewsFlow/services/video-bot/pkg/errors"
)

// UseCase contains business logic for video requests
type UseCase struct {
	downloader *downloader.Service
	sender     *sender.Service
	progress   *progress.Manager
	classifier *videoerrors.Classifier
	messenger  deps.Messenger
	cfg        *config.DownloadConfig
	logger     zerolog.Logger
}

// NewUseCase creates a new UseCase instance
// Note: the chat transport is not passed here to break cyclic dependency
// Use SetSender after creating TelegramHandlers
func NewUseCase(
	dl *downloader.Service,
	snd *sender.Service,
	pm *progress.Manager,
	classifier *videoerrors.Classifier,
	cfg *config.DownloadConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		downloader: dl,
		sender:     snd,
		progress:   pm,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// SetSender sets the chat transport after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(transport deps.ChatTransport) {
	uc.messenger = transport
	uc.sender.SetUploader(transport)
	uc.progress.SetMessenger(transport)
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.CommandRequest) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Msg("User started bot")

	return &dto.CommandResponse{Message: consts.WelcomeMessage}, nil
}

// HandleHelp handles /help command
func (uc *UseCase) HandleHelp(ctx context.Context) (*dto.CommandResponse, error) {
	return &dto.CommandResponse{Message: consts.HelpMessage}, nil
}

// HandleStatus handles /status command
func (uc *UseCase) HandleStatus(ctx context.Context) (*dto.CommandResponse, error) {
	return &dto.CommandResponse{Message: consts.StatusMessage}, nil
}

// HandleVideoLink runs one request through recognize, download, deliver and
// report. Every failure ends in a message to the chat; the returned error is
// non-nil only when nothing could be reported.
func (uc *UseCase) HandleVideoLink(ctx context.Context, req *dto.VideoRequest) (result *dto.VideoResult, err error) {
	if uc.messenger == nil {
		return nil, videoerrors.ErrSenderNotSet
	}

	result = &dto.VideoResult{}
	log := uc.logger.With().Int64("chat_id", req.ChatID).Int64("user_id", req.UserID).Logger()

	var session *progress.Session

	defer func() {
		if r := recover(); r != nil {
			msg := uc.classifier.UserMessage(fmt.Sprint(r))
			log.Error().Interface("panic", r).Msg("Video request panicked")
			result.Delivered = false
			result.Reply = progress.ErrorPrefix + msg
			err = uc.report(ctx, req.ChatID, session, msg)
		}
	}()

	link := linkparser.Parse(req.Text)
	result.Platform = link.Platform.String()

	if !link.Found() {
		log.Info().Err(videoerrors.ErrNoLink).Msg("No video link in message")
		result.Rejected = videoerrors.ErrNoLink
		result.Reply = consts.NoLinkMessage
		return result, uc.reply(ctx, req.ChatID, consts.NoLinkMessage)
	}

	if !linkparser.IsSupported(link.Platform) {
		log.Info().Err(videoerrors.ErrUnsupportedPlatform).Str("platform", link.Platform.String()).Msg("Platform not supported")
		result.Rejected = videoerrors.ErrUnsupportedPlatform
		result.Reply = consts.UnsupportedPlatformMessage
		return result, uc.reply(ctx, req.ChatID, consts.UnsupportedPlatformMessage)
	}

	log = log.With().Str("platform", link.Platform.String()).Str("url", link.URL).Logger()

	session, err = uc.progress.Start(ctx, req.ChatID)
	if err != nil {
		msg := uc.classifier.UserMessage(err.Error())
		result.Reply = progress.ErrorPrefix + msg
		return result, uc.reply(ctx, req.ChatID, result.Reply)
	}
	defer session.Close()

	log.Info().Msg("Starting video download")

	outcome := uc.downloader.Download(ctx, link.URL, uc.cfg.TempDir, uc.cfg.MaxFileSize, session.Report)
	if !outcome.Success {
		msg := uc.classifier.UserMessage(outcome.ErrorMessage)
		session.Fail(ctx, msg)
		result.Reply = progress.ErrorPrefix + msg
		return result, nil
	}

	// Send removes the file itself; this covers a panic before it runs
	defer sender.Cleanup(outcome.FilePath, log)

	session.Sending(ctx)

	log.Info().
		Str("file_path", outcome.FilePath).
		Int64("size_bytes", outcome.FileSize).
		Msg("Sending video")

	if err := uc.sender.Send(ctx, req.ChatID, outcome.FilePath, uc.cfg.MaxFileSize); err != nil {
		log.Error().
			Err(err).
			Stringer("error_type", pkgerrors.TypeOf(err)).
			Stringer("category", videoerrors.CategoryOf(err)).
			Msg("Failed to deliver video")
		session.Fail(ctx, err.Error())
		result.Reply = progress.ErrorPrefix + err.Error()
		return result, nil
	}

	session.Complete(ctx)
	result.Delivered = true

	log.Info().Msg("Video delivered")
	return result, nil
}

// report shows an error on the status message if there is one, otherwise in
// a new message
func (uc *UseCase) report(ctx context.Context, chatID int64, session *progress.Session, msg string) error {
	if session != nil {
		session.Fail(ctx, msg)
		return nil
	}
	return uc.reply(ctx, chatID, progress.ErrorPrefix+msg)
}

func (uc *UseCase) reply(ctx context.Context, chatID int64, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error().Interface("panic", r).Int64("chat_id", chatID).Msg("Reply panicked")
			err = fmt.Errorf("failed to send reply: %v", r)
		}
	}()

	if _, err := uc.messenger.SendMessage(ctx, chatID, text); err != nil {
		uc.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// Package video contains the video domain module
package video

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	telegramDelivery "github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/delivery/telegram"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/downloader"
	videoerrors "github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/errors"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/progress"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/sender"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/usecase/buissines"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/infrastructure/telegram"
)

// Module provides video domain components for fx dependency injection
var Module = fx.Module("video",
	// Services
	fx.Provide(downloader.NewService),
	fx.Provide(provideSender),
	fx.Provide(provideProgressManager),
	fx.Provide(videoerrors.NewClassifier),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideSender creates the delivery manager; its uploader is set in wireAndRegister
func provideSender(logger zerolog.Logger) *sender.Service {
	return sender.NewService(nil, logger)
}

// provideProgressManager creates the progress manager; its messenger is set in wireAndRegister
func provideProgressManager(logger zerolog.Logger) *progress.Manager {
	return progress.NewManager(nil, logger)
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(uc *buissines.UseCase, bot *telegram.Bot, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), logger)
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	uc *buissines.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
	logger zerolog.Logger,
) {
	// Handlers implements deps.ChatTransport interface
	// This resolves the cyclic dependency: UseCase -> ChatTransport <- Handlers -> UseCase
	uc.SetSender(handlers)

	// Register Telegram command routes
	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Menu registration failures are logged only
			if err := router.RegisterCommandMenu(ctx, bot.Raw()); err != nil {
				logger.Warn().Err(err).Msg("Continuing without command menu")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Waiting for in-flight video requests")
			return handlers.Wait(ctx)
		},
	})
}

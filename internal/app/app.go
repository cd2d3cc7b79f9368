// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/NewsFlow/services/video-bot/config"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, telegram bot, yt-dlp engine)
		infrastructure.Module,

		// Domain (video download pipeline)
		domain.Module,
	)
}

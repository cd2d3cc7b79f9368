package ytdlp

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/NewsFlow/services/video-bot/config"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/deps"
)

// Module provides the yt-dlp engine for fx dependency injection
var Module = fx.Module("ytdlp",
	fx.Provide(NewEngine),
	fx.Provide(func(e *Engine) deps.Extractor { return e }),
	fx.Invoke(registerLifecycle),
)

// registerLifecycle installs yt-dlp on start when auto install is enabled
func registerLifecycle(lc fx.Lifecycle, engine *Engine, cfg *config.DownloadConfig, logger zerolog.Logger) {
	if !cfg.AutoInstall {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := engine.Install(ctx); err != nil {
				logger.Error().Err(err).Msg("yt-dlp auto install failed")
				return err
			}
			return nil
		},
	})
}

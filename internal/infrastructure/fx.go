// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/infrastructure/logger"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/infrastructure/telegram"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/infrastructure/ytdlp"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	telegram.Module,
	ytdlp.Module,
)

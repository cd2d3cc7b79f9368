// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	video.Module,
)

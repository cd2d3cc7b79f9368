// Package ytdlp contains the yt-dlp extraction engine adapter
package ytdlp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/config"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/entities"
)

// ProgressInterval is how often yt-dlp reports progress
const ProgressInterval = 500 * time.Millisecond

// Engine runs yt-dlp for one request at a time per call.
// Implements deps.Extractor interface
type Engine struct {
	executable string
	logger     zerolog.Logger
}

// NewEngine creates a new yt-dlp engine
func NewEngine(cfg *config.DownloadConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		executable: cfg.YtDlpPath,
		logger:     logger.With().Str("component", "ytdlp").Logger(),
	}
}

// Install resolves the yt-dlp binary, downloading it when missing
func (e *Engine) Install(ctx context.Context) error {
	if e.executable != "" {
		return nil
	}

	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}

	e.executable = resolved.Executable
	e.logger.Info().Str("path", resolved.Executable).Str("version", resolved.Version).Msg("yt-dlp resolved")
	return nil
}

// Extract implements deps.Extractor interface
func (e *Engine) Extract(ctx context.Context, req entities.ExtractRequest, onEvent func(entities.ProgressEvent)) error {
	cmd := ytdlp.New().
		Format(req.Format).
		Output(req.OutputPath).
		MergeOutputFormat(req.MergeFormat).
		NoPlaylist().
		NoWarnings()

	if e.executable != "" {
		cmd.SetExecutable(e.executable)
	}

	if onEvent != nil {
		cmd.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			onEvent(toEvent(update))
		})
	}

	e.logger.Debug().Str("url", req.URL).Str("format", req.Format).Msg("Running yt-dlp")

	result, err := cmd.Run(ctx, req.URL)
	if err != nil {
		return runError(result, err)
	}

	return nil
}

func toEvent(update ytdlp.ProgressUpdate) entities.ProgressEvent {
	return entities.ProgressEvent{
		Status:          entities.ProgressStatus(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		FragmentIndex:   update.FragmentIndex,
		FragmentCount:   update.FragmentCount,
	}
}

// runError keeps the tool's own error lines so classification sees them
func runError(result *ytdlp.Result, err error) error {
	if result == nil {
		return err
	}

	var lines []string
	for _, line := range strings.Split(result.Stderr, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "ERROR:") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) == 0 {
		return err
	}

	return fmt.Errorf("%s: %w", strings.Join(lines, "; "), err)
}

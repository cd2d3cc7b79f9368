// Package downloader drives the extraction engine and normalizes its result
package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/deps"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/entities"
	videoerrors "github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/errors"
)

// Constants for artifact naming and format selection
const (
	DefaultMaxSize       = 50 * 1024 * 1024 // 50MB
	DefaultExtension     = ".mp4"
	MergeFormat          = "mp4"
	MaxInProgressPercent = 99.0
	FinishedPercent      = 100.0
)

// FallbackExtensions are probed when the engine picked another container
var FallbackExtensions = []string{".mp4", ".mkv", ".webm", ".m4a"}

// ProgressFunc receives download completion in percent
type ProgressFunc func(percent float64)

// Service downloads videos into uniquely named temporary files
type Service struct {
	extractor deps.Extractor
	logger    zerolog.Logger
}

// NewService creates a new download Service
func NewService(extractor deps.Extractor, logger zerolog.Logger) *Service {
	return &Service{
		extractor: extractor,
		logger:    logger.With().Str("component", "downloader").Logger(),
	}
}

// UniqueOutputPath returns dir joined with a random UUID file name
func UniqueOutputPath(dir string) string {
	return filepath.Join(dir, uuid.NewString()+DefaultExtension)
}

// FormatSelector prefers the best stream under maxSize and falls back to the
// best available one when the engine does not know sizes in advance
func FormatSelector(maxSize int64) string {
	return fmt.Sprintf("best[filesize<%d]/bestvideo[filesize<%d]+bestaudio/best", maxSize, maxSize)
}

// Percent translates an engine event into a completion percentage.
// It reports false when the event carries no usable counters.
func Percent(ev entities.ProgressEvent) (float64, bool) {
	switch ev.Status {
	case entities.ProgressStatusDownloading:
		total := ev.TotalBytes
		if total <= 0 {
			total = ev.TotalBytesEstimate
		}
		if total > 0 {
			return capInProgress(float64(ev.DownloadedBytes) / float64(total) * 100), true
		}
		if ev.FragmentCount > 0 {
			return capInProgress(float64(ev.FragmentIndex) / float64(ev.FragmentCount) * 100), true
		}
		return 0, false
	case entities.ProgressStatusFinished:
		return FinishedPercent, true
	default:
		return 0, false
	}
}

// 100 is reserved for the finished event
func capInProgress(p float64) float64 {
	if p > MaxInProgressPercent {
		return MaxInProgressPercent
	}
	if p < 0 {
		return 0
	}
	return p
}

// Download fetches url into outputDir. It never returns an error or panics:
// every failure is reported through the returned outcome.
func (s *Service) Download(ctx context.Context, url, outputDir string, maxSize int64, onProgress ProgressFunc) (outcome entities.DownloadOutcome) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	outputPath := UniqueOutputPath(outputDir)
	req := entities.ExtractRequest{
		URL:         url,
		Format:      FormatSelector(maxSize),
		OutputPath:  outputPath,
		MergeFormat: MergeFormat,
	}

	log := s.logger.With().Str("url", url).Str("file_path", outputPath).Logger()
	log.Info().Int64("max_size", maxSize).Msg("Starting download")

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Extractor panicked")
			s.discardPartial(outputPath)
			outcome = entities.Failed(fmt.Sprint(r))
		}
	}()

	if err := s.extractor.Extract(ctx, req, progressHook(onProgress)); err != nil {
		log.Error().Err(err).Msg("Download failed")
		s.discardPartial(outputPath)
		return entities.Failed(err.Error())
	}

	outcome = s.locateArtifact(outputPath)
	if outcome.Success {
		log.Info().Str("file_path", outcome.FilePath).Int64("size_bytes", outcome.FileSize).Msg("Download completed")
	} else {
		log.Warn().Msg("Download finished without creating a file")
	}
	return outcome
}

// progressHook adapts onProgress to engine events. A panicking callback is
// swallowed so the download loop never sees it.
func progressHook(onProgress ProgressFunc) func(entities.ProgressEvent) {
	return func(ev entities.ProgressEvent) {
		if onProgress == nil {
			return
		}
		percent, ok := Percent(ev)
		if !ok {
			return
		}
		defer func() { _ = recover() }()
		onProgress(percent)
	}
}

// locateArtifact finds the file the engine wrote, which may carry a
// different container extension than requested
func (s *Service) locateArtifact(outputPath string) entities.DownloadOutcome {
	if size, ok := nonEmptyFile(outputPath); ok {
		return entities.Succeeded(outputPath, size)
	}

	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	for _, ext := range FallbackExtensions {
		candidate := base + ext
		if size, ok := nonEmptyFile(candidate); ok {
			s.logger.Debug().Str("file_path", candidate).Msg("Found artifact with fallback extension")
			return entities.Succeeded(candidate, size)
		}
	}

	s.discardPartial(outputPath)
	return entities.Failed(videoerrors.ErrFileNotCreated.Error())
}

func nonEmptyFile(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() <= 0 {
		return 0, false
	}
	return info.Size(), true
}

// discardPartial removes leftovers of a failed download so nothing is
// orphaned in the output directory
func (s *Service) discardPartial(outputPath string) {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	candidates := []string{outputPath, outputPath + ".part"}
	for _, ext := range FallbackExtensions {
		candidates = append(candidates, base+ext, base+ext+".part")
	}

	for _, path := range candidates {
		err := os.Remove(path)
		if err == nil {
			s.logger.Debug().Str("file_path", path).Msg("Removed partial download")
		} else if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("file_path", path).Msg("Failed to remove partial download")
		}
	}
}

package sender

import (
	"os"

	"github.com/rs/zerolog"
)

// Cleanup deletes the file at path. A missing file counts as success; a
// directory or any OS error counts as failure. It never panics.
func Cleanup(path string, logger zerolog.Logger) bool {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("file_path", path).Msg("File does not exist, nothing to clean up")
		return true
	}
	if err != nil {
		logger.Error().Err(err).Str("file_path", path).Msg("Failed to stat temporary file")
		return false
	}
	if info.IsDir() {
		logger.Error().Str("file_path", path).Msg("Refusing to remove a directory")
		return false
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return true
		}
		logger.Error().Err(err).Str("file_path", path).Msg("Failed to remove temporary file")
		return false
	}

	logger.Info().Str("file_path", path).Msg("Temporary file removed")
	return true
}

// FileSize returns the size of the file at path in bytes
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// IsFileSizeValid reports whether size fits under the ceiling
func IsFileSizeValid(size, maxSize int64) bool {
	return size <= maxSize
}

// Package errors contains domain-specific errors for the video domain
package errors

import (
	pkgerrors "github.com/Conte777/NewsFlow/services/video-bot/pkg/errors"
)

// Domain errors for video operations
var (
	ErrNoLink              = pkgerrors.NewValidationError("no supported video link in message")
	ErrUnsupportedPlatform = pkgerrors.NewValidationError("platform is not supported")
	ErrFileNotCreated      = pkgerrors.NewNotFoundError("File không được tạo sau khi tải")
	ErrFileMissing         = pkgerrors.NewNotFoundError("File video không tồn tại")
	ErrFileSizeUnreadable  = pkgerrors.NewInternalError("Không thể đọc kích thước file")
	ErrSenderNotSet        = pkgerrors.NewInternalError("chat transport is not set")
)

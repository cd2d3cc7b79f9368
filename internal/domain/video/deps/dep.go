// Package deps contains interface definitions for the video domain dependencies
package deps

import (
	"context"
	"io"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/entities"
)

// Messenger defines the text-message primitives of the chat transport
type Messenger interface {
	// SendMessage sends a text message and returns its telegram message ID
	SendMessage(ctx context.Context, chatID int64, text string) (messageID int, err error)

	// EditMessageText replaces the text of an existing message
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error

	// DeleteMessage deletes a message from the chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// VideoUploader defines the video-send primitive of the chat transport
type VideoUploader interface {
	// SendVideo streams a video file to the chat
	SendVideo(ctx context.Context, chatID int64, filename string, video io.Reader) error
}

// ChatTransport is the full chat transport collaborator
// This interface is used to break the cyclic dependency between UseCase and Telegram Handlers
type ChatTransport interface {
	Messenger
	VideoUploader
}

// Extractor defines the video extraction engine.
// onEvent may be called from a goroutine owned by the engine.
type Extractor interface {
	Extract(ctx context.Context, req entities.ExtractRequest, onEvent func(entities.ProgressEvent)) error
}

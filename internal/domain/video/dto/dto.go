// Package dto contains data transfer objects for the video domain
package dto

// CommandRequest represents a request to handle a bot command
type CommandRequest struct {
	UserID   int64  `json:"userId"`
	ChatID   int64  `json:"chatId"`
	Username string `json:"username"`
}

// VideoRequest represents a text message that may carry a video link
type VideoRequest struct {
	UserID int64  `json:"userId"`
	ChatID int64  `json:"chatId"`
	Text   string `json:"text"`
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}

// VideoResult reports how a VideoRequest ended
type VideoResult struct {
	Delivered bool   `json:"delivered"`
	Platform  string `json:"platform"`
	Reply     string `json:"reply,omitempty"`

	// Rejected is set when the message was answered with guidance instead
	// of a download
	Rejected error `json:"-"`
}

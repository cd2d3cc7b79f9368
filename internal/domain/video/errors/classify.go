package errors

import (
	"strings"

	"github.com/rs/zerolog"

	pkgerrors "github.com/Conte777/NewsFlow/services/video-bot/pkg/errors"
)

// Category is a user-facing failure class
type Category int

const (
	CategoryUnknown Category = iota
	CategoryVideoNotFound
	CategoryAccessDenied
	CategoryNetwork
	CategoryFileTooLarge
	CategoryExtractorOutdated
)

var categoryNames = map[Category]string{
	CategoryUnknown:           "unknown_error",
	CategoryVideoNotFound:     "video_not_found",
	CategoryAccessDenied:      "access_denied",
	CategoryNetwork:           "network_error",
	CategoryFileTooLarge:      "file_too_large",
	CategoryExtractorOutdated: "extractor_outdated",
}

var categoryMessages = map[Category]string{
	CategoryUnknown:           "Lỗi không xác định",
	CategoryVideoNotFound:     "Video không tồn tại hoặc đã bị xóa",
	CategoryAccessDenied:      "Video bị giới hạn, không thể tải",
	CategoryNetwork:           "Lỗi kết nối mạng, vui lòng thử lại sau",
	CategoryFileTooLarge:      "Video quá lớn (>50MB), không thể gửi qua Telegram",
	CategoryExtractorOutdated: "Lỗi yt-dlp, có thể cần cập nhật",
}

// String returns the string representation of Category
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// Message returns the localized text shown to the user
func (c Category) Message() string {
	if msg, ok := categoryMessages[c]; ok {
		return msg
	}
	return categoryMessages[CategoryUnknown]
}

type keywordGroup struct {
	category Category
	keywords []string
}

// Groups are checked in order; the first group with any matching keyword wins.
// FILE_TOO_LARGE is never detected from text: delivery raises it structurally.
var keywordGroups = []keywordGroup{
	{
		category: CategoryVideoNotFound,
		keywords: []string{
			"video unavailable", "not found", "does not exist", "has been removed",
			"deleted", "unavailable", "no video", "404",
		},
	},
	{
		category: CategoryAccessDenied,
		keywords: []string{
			"private", "restricted", "age-restricted", "age restricted",
			"login required", "sign in", "members only", "subscribers only",
			"permission denied", "access denied", "forbidden", "403",
		},
	},
	{
		category: CategoryNetwork,
		keywords: []string{
			"network", "connection", "timeout", "timed out", "unreachable", "dns",
			"socket", "ssl", "certificate", "connect error", "connection refused",
			"connection reset", "no internet",
		},
	},
	{
		category: CategoryExtractorOutdated,
		keywords: []string{
			"update", "outdated", "upgrade", "new version", "please update",
			"extractor needs", "yt-dlp needs", "extractor error",
		},
	},
}

// Classify maps a raw failure description to a Category
func Classify(raw string) Category {
	text := strings.ToLower(raw)
	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				return group.category
			}
		}
	}
	return CategoryUnknown
}

// CategoryOf classifies err, detecting oversize rejections from the error type
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	if pkgerrors.IsTooLargeError(err) {
		return CategoryFileTooLarge
	}
	return Classify(err.Error())
}

// Classifier logs failures before classifying them
type Classifier struct {
	logger zerolog.Logger
}

// NewClassifier creates a new Classifier
func NewClassifier(logger zerolog.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Classify logs raw and returns its Category
func (c *Classifier) Classify(raw string) Category {
	c.logger.Error().Str("raw_error", raw).Msg("Classifying failure")

	category := Classify(raw)

	c.logger.Debug().Str("category", category.String()).Msg("Failure classified")
	return category
}

// UserMessage returns the localized message for raw
func (c *Classifier) UserMessage(raw string) string {
	return c.Classify(raw).Message()
}

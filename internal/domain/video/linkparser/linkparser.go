// Package linkparser recognizes supported video links in free text
package linkparser

import (
	"regexp"

	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/entities"
)

type platformPatterns struct {
	platform entities.Platform
	patterns []*regexp.Regexp
}

// Order matters: platforms are tried first to last, and within a platform
// each pattern in turn. The first match wins.
var platforms = []platformPatterns{
	{
		platform: entities.PlatformYouTube,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
			regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/[\w-]+`),
			regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
		},
	},
	{
		platform: entities.PlatformFacebook,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:https?://)?(?:www\.)?facebook\.com/.+/videos/\d+`),
			regexp.MustCompile(`(?:https?://)?(?:www\.)?facebook\.com/reel/\d+`),
			regexp.MustCompile(`(?:https?://)?(?:www\.)?facebook\.com/stories/\d+`),
			regexp.MustCompile(`(?:https?://)?fb\.watch/[\w-]+`),
		},
	},
	{
		platform: entities.PlatformInstagram,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:https?://)?(?:www\.)?instagram\.com/(?:p|reel|reels)/[\w-]+`),
			regexp.MustCompile(`(?:https?://)?(?:www\.)?instagram\.com/stories/[\w.]+/\d+`),
		},
	},
}

// supported lists platforms the bot will download from. A platform can be
// recognized without being listed here.
var supported = map[entities.Platform]bool{
	entities.PlatformYouTube:   true,
	entities.PlatformFacebook:  true,
	entities.PlatformInstagram: true,
}

// Parse returns the first video link found in text. When nothing matches the
// result has an empty URL and PlatformUnknown.
func Parse(text string) entities.ParsedLink {
	for _, p := range platforms {
		for _, re := range p.patterns {
			if match := re.FindString(text); match != "" {
				return entities.ParsedLink{URL: match, Platform: p.platform}
			}
		}
	}
	return entities.ParsedLink{Platform: entities.PlatformUnknown}
}

// IsSupported reports whether the bot acts on links from platform
func IsSupported(platform entities.Platform) bool {
	return supported[platform]
}

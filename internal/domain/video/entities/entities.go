// Package entities contains domain entities for the video domain
package entities

// Platform is the source service a link belongs to
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformUnknown   Platform = "unknown"
)

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// ParsedLink is a video link recognized in a user message.
// URL is non-empty iff Platform is not PlatformUnknown.
type ParsedLink struct {
	URL      string
	Platform Platform
}

// Found reports whether a link was recognized
func (l ParsedLink) Found() bool {
	return l.URL != ""
}

// DownloadOutcome is the result of one download attempt
type DownloadOutcome struct {
	Success      bool
	FilePath     string
	ErrorMessage string
	FileSize     int64
}

// Succeeded builds a successful outcome
func Succeeded(path string, size int64) DownloadOutcome {
	return DownloadOutcome{Success: true, FilePath: path, FileSize: size}
}

// Failed builds a failed outcome carrying the raw failure description
func Failed(message string) DownloadOutcome {
	return DownloadOutcome{Success: false, ErrorMessage: message}
}

// ProgressStatus is the engine-reported state of a download
type ProgressStatus string

const (
	ProgressStatusDownloading ProgressStatus = "downloading"
	ProgressStatusFinished    ProgressStatus = "finished"
)

// ProgressEvent is one incremental status report from the extraction engine.
// Zero counters mean the engine did not report them.
type ProgressEvent struct {
	Status             ProgressStatus
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	FragmentIndex      int
	FragmentCount      int
}

// ExtractRequest describes one invocation of the extraction engine
type ExtractRequest struct {
	URL         string
	Format      string
	OutputPath  string
	MergeFormat string
}

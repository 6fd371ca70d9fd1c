package domain

import "context"

// DownloadOptions carries the engine invocation parameters for one download
type DownloadOptions struct {
	OutputTemplate string
	Format         string
	Audio          *AudioSpec
}

// Engine is the external extraction/download collaborator (yt-dlp)
type Engine interface {
	// Resolve fetches metadata for a URL without downloading
	Resolve(ctx context.Context, url string) (*MediaInfo, error)

	// Download produces files under the options' output template
	Download(ctx context.Context, url string, opts DownloadOptions) error
}

// Button is one selectable option presented to the user
type Button struct {
	Label string
	Token string
}

// ButtonGroup groups buttons under a heading
type ButtonGroup struct {
	Heading string
	Buttons []Button
}

// AudioMeta carries send metadata for audio files
type AudioMeta struct {
	Caption   string
	Title     string
	Performer string
}

// VideoMeta carries send metadata for video files
type VideoMeta struct {
	Caption           string
	SupportsStreaming bool
}

// Transport is the conversational collaborator the pipeline reports to
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendChoices(ctx context.Context, chatID int64, text string, groups []ButtonGroup) error
	SendAudio(ctx context.Context, chatID int64, path string, meta AudioMeta) error
	SendVideo(ctx context.Context, chatID int64, path string, meta VideoMeta) error
}

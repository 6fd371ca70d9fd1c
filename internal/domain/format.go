package domain

import (
	"fmt"
	"strings"
)

// MediaKind classifies a selectable format or a produced file
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// CodecNone is the extractor's sentinel for an absent codec
const CodecNone = "none"

// SizeUnknown is the literal marker used when the extractor reports no size
const SizeUnknown = "?"

// RawFormat is one format entry from the extractor's metadata JSON.
// Field tags follow the yt-dlp info-dict shape.
type RawFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Filesize       int64   `json:"filesize,omitempty"`
	FilesizeApprox int64   `json:"filesize_approx,omitempty"`
	VideoCodec     string  `json:"vcodec,omitempty"`
	AudioCodec     string  `json:"acodec,omitempty"`
	Height         int     `json:"height,omitempty"`
	FPS            float64 `json:"fps,omitempty"`
	AudioBitrate   float64 `json:"abr,omitempty"`
	FormatNote     string  `json:"format_note,omitempty"`
}

// Size returns the declared byte size, falling back to the approximate one
func (f RawFormat) Size() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	return f.FilesizeApprox
}

// MediaInfo is the read-only resolution result for one URL
type MediaInfo struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Uploader   string      `json:"uploader"`
	Duration   float64     `json:"duration"`
	WebpageURL string      `json:"webpage_url"`
	Formats    []RawFormat `json:"formats"`
}

// DurationString formats the duration as m:ss, or "Unknown" when unreported
func (m *MediaInfo) DurationString() string {
	if m.Duration <= 0 {
		return "Unknown"
	}
	secs := int(m.Duration)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// CatalogEntry is one user-selectable format derived from a RawFormat
type CatalogEntry struct {
	ID      string
	Kind    MediaKind
	Quality string
	Ext     string
	Size    string // megabytes with one decimal, or SizeUnknown
	SortKey int
}

// Label renders the entry as a button caption, e.g. "1080p (MP4) [12.3MB]"
func (e CatalogEntry) Label() string {
	label := fmt.Sprintf("%s (%s)", e.Quality, strings.ToUpper(e.Ext))
	if e.Size != SizeUnknown {
		label += fmt.Sprintf(" [%sMB]", e.Size)
	}
	return label
}

// Catalog holds the ranked, deduplicated selectable formats for one URL
type Catalog struct {
	Video []CatalogEntry
	Audio []CatalogEntry
}

// Empty reports whether no selectable format survived catalog building
func (c Catalog) Empty() bool {
	return len(c.Video) == 0 && len(c.Audio) == 0
}

var extKinds = map[string]MediaKind{
	".mp4":  KindVideo,
	".mkv":  KindVideo,
	".webm": KindVideo,
	".mp3":  KindAudio,
	".m4a":  KindAudio,
	".opus": KindAudio,
	".aac":  KindAudio,
	".flac": KindAudio,
	".wav":  KindAudio,
}

// KindForExt maps a file extension (with leading dot) to a media kind.
// The second return is false for extensions outside the known media set.
func KindForExt(ext string) (MediaKind, bool) {
	kind, ok := extKinds[strings.ToLower(ext)]
	return kind, ok
}

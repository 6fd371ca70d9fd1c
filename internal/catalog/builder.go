// Package catalog turns raw extractor metadata into the ranked,
// deduplicated list of selectable formats offered to the user.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// Exposure caps: the catalog offers only the top entries of each kind
const (
	MaxVideoEntries = 8
	MaxAudioEntries = 6
)

// Build derives the selectable format catalog from the raw format list.
// Entries missing a format id or extension are discarded; entries that
// are neither video nor audio-only are dropped. Duplicate ids keep the
// last occurrence, sorted output is capped at the exposure limits.
func Build(formats []domain.RawFormat) domain.Catalog {
	var video, audio []domain.CatalogEntry

	for _, f := range formats {
		if f.FormatID == "" || f.Ext == "" {
			continue
		}
		switch {
		case f.VideoCodec != "" && f.VideoCodec != domain.CodecNone:
			video = append(video, videoEntry(f))
		case f.VideoCodec == domain.CodecNone && f.AudioCodec != "" && f.AudioCodec != domain.CodecNone:
			audio = append(audio, audioEntry(f))
		}
	}

	return domain.Catalog{
		Video: rank(video, MaxVideoEntries),
		Audio: rank(audio, MaxAudioEntries),
	}
}

func videoEntry(f domain.RawFormat) domain.CatalogEntry {
	quality := fmt.Sprintf("%dp", f.Height)
	if f.FPS > 30 {
		quality += fmt.Sprintf("@%dfps", int(f.FPS))
	}
	return domain.CatalogEntry{
		ID:      f.FormatID,
		Kind:    domain.KindVideo,
		Quality: quality,
		Ext:     f.Ext,
		Size:    sizeLabel(f.Size()),
		SortKey: videoSortKey(quality),
	}
}

func audioEntry(f domain.RawFormat) domain.CatalogEntry {
	quality := "audio"
	if f.AudioBitrate > 0 {
		quality = fmt.Sprintf("%gkbps", f.AudioBitrate)
	}
	return domain.CatalogEntry{
		ID:      f.FormatID,
		Kind:    domain.KindAudio,
		Quality: quality,
		Ext:     f.Ext,
		Size:    sizeLabel(f.Size()),
		SortKey: audioSortKey(quality),
	}
}

func sizeLabel(bytes int64) string {
	if bytes <= 0 {
		return domain.SizeUnknown
	}
	return fmt.Sprintf("%.1f", float64(bytes)/(1024*1024))
}

// videoSortKey parses the height from a quality label such as
// "1080p@60fps". Unparsable labels rank lowest.
func videoSortKey(quality string) int {
	prefix := quality
	if at := strings.Index(prefix, "@"); at >= 0 {
		prefix = prefix[:at]
	}
	prefix = strings.TrimSuffix(prefix, "p")
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return n
}

// audioSortKey parses the bitrate from a quality label such as
// "128kbps". The literal "audio" and fractional bitrates rank lowest.
func audioSortKey(quality string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(quality, "kbps"))
	if err != nil {
		return 0
	}
	return n
}

// rank deduplicates by id (last occurrence wins, first position kept),
// stable-sorts by descending sort key, and caps the result.
func rank(entries []domain.CatalogEntry, limit int) []domain.CatalogEntry {
	deduped := make([]domain.CatalogEntry, 0, len(entries))
	position := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := position[e.ID]; ok {
			deduped[i] = e
			continue
		}
		position[e.ID] = len(deduped)
		deduped = append(deduped, e)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].SortKey > deduped[j].SortKey
	})

	if len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}

package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

func videoFormat(id string, height int, fps float64, size int64) domain.RawFormat {
	return domain.RawFormat{
		FormatID:   id,
		Ext:        "mp4",
		VideoCodec: "avc1",
		AudioCodec: "mp4a",
		Height:     height,
		FPS:        fps,
		Filesize:   size,
	}
}

func audioFormat(id string, abr float64, size int64) domain.RawFormat {
	return domain.RawFormat{
		FormatID:     id,
		Ext:          "m4a",
		VideoCodec:   "none",
		AudioCodec:   "mp4a",
		AudioBitrate: abr,
		Filesize:     size,
	}
}

func TestBuild_DropsUnusableEntries(t *testing.T) {
	formats := []domain.RawFormat{
		{Ext: "mp4", VideoCodec: "avc1", Height: 720},          // no id
		{FormatID: "22", VideoCodec: "avc1", Height: 720},      // no ext
		{FormatID: "sb0", Ext: "mhtml", VideoCodec: "none"},    // neither kind
		{FormatID: "x", Ext: "mp4", VideoCodec: "", AudioCodec: "mp4a"}, // vcodec unreported
		videoFormat("18", 360, 30, 0),
	}

	cat := Build(formats)

	require.Len(t, cat.Video, 1)
	assert.Equal(t, "18", cat.Video[0].ID)
	assert.Empty(t, cat.Audio)
}

func TestBuild_QualityLabels(t *testing.T) {
	tests := []struct {
		name     string
		format   domain.RawFormat
		expected string
	}{
		{"plain height", videoFormat("1", 1080, 30, 0), "1080p"},
		{"high fps annotated", videoFormat("2", 1080, 60, 0), "1080p@60fps"},
		{"fps exactly 30 is plain", videoFormat("3", 720, 30, 0), "720p"},
		{"fractional fps truncated", videoFormat("4", 720, 59.94, 0), "720p@59fps"},
		{"known bitrate", audioFormat("5", 128, 0), "128kbps"},
		{"zero bitrate falls back", audioFormat("6", 0, 0), "audio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Build([]domain.RawFormat{tt.format})
			var entry domain.CatalogEntry
			if tt.format.VideoCodec != "none" {
				require.Len(t, cat.Video, 1)
				entry = cat.Video[0]
			} else {
				require.Len(t, cat.Audio, 1)
				entry = cat.Audio[0]
			}
			assert.Equal(t, tt.expected, entry.Quality)
		})
	}
}

func TestBuild_SizeLabels(t *testing.T) {
	cat := Build([]domain.RawFormat{
		videoFormat("1", 720, 30, 10485760), // exactly 10 MiB
		videoFormat("2", 360, 30, 0),        // unreported
		{FormatID: "3", Ext: "mp4", VideoCodec: "avc1", Height: 480, FilesizeApprox: 52428800},
	})

	require.Len(t, cat.Video, 3)
	assert.Equal(t, "10.0", cat.Video[0].Size)
	assert.Equal(t, domain.SizeUnknown, cat.Video[2].Size)
	assert.Equal(t, "50.0", cat.Video[1].Size) // approx size used when declared absent
}

func TestBuild_DedupKeepsLastOccurrence(t *testing.T) {
	cat := Build([]domain.RawFormat{
		videoFormat("137", 1080, 30, 1000),
		videoFormat("18", 360, 30, 0),
		videoFormat("137", 1080, 60, 2000), // same id seen again
	})

	require.Len(t, cat.Video, 2)
	assert.Equal(t, "137", cat.Video[0].ID)
	assert.Equal(t, "1080p@60fps", cat.Video[0].Quality)
	assert.Equal(t, "0.0", cat.Video[0].Size[:3])
}

func TestBuild_SortsDescendingByHeight(t *testing.T) {
	cat := Build([]domain.RawFormat{
		videoFormat("18", 360, 30, 0),
		videoFormat("137", 1080, 30, 0),
		videoFormat("22", 720, 30, 0),
	})

	require.Len(t, cat.Video, 3)
	assert.Equal(t, []string{"137", "22", "18"}, []string{cat.Video[0].ID, cat.Video[1].ID, cat.Video[2].ID})
}

func TestBuild_TiesKeepInputOrder(t *testing.T) {
	cat := Build([]domain.RawFormat{
		videoFormat("a", 720, 30, 0),
		videoFormat("b", 720, 30, 0),
		videoFormat("c", 1080, 30, 0),
	})

	require.Len(t, cat.Video, 3)
	assert.Equal(t, "c", cat.Video[0].ID)
	assert.Equal(t, "a", cat.Video[1].ID)
	assert.Equal(t, "b", cat.Video[2].ID)
}

func TestBuild_AudioSortsDescendingByBitrate(t *testing.T) {
	cat := Build([]domain.RawFormat{
		audioFormat("low", 48, 0),
		audioFormat("none", 0, 0), // "audio" label ranks lowest
		audioFormat("high", 160, 0),
		audioFormat("mid", 128, 0),
	})

	require.Len(t, cat.Audio, 4)
	assert.Equal(t, "high", cat.Audio[0].ID)
	assert.Equal(t, "mid", cat.Audio[1].ID)
	assert.Equal(t, "low", cat.Audio[2].ID)
	assert.Equal(t, "none", cat.Audio[3].ID)
}

func TestBuild_TruncatesToExposureCaps(t *testing.T) {
	var formats []domain.RawFormat
	for i := 0; i < 20; i++ {
		formats = append(formats, videoFormat(fmt.Sprintf("v%d", i), 144+i*48, 30, 0))
	}
	for i := 0; i < 10; i++ {
		formats = append(formats, audioFormat(fmt.Sprintf("a%d", i), float64(32+i*16), 0))
	}

	cat := Build(formats)

	require.Len(t, cat.Video, MaxVideoEntries)
	require.Len(t, cat.Audio, MaxAudioEntries)

	// The survivors are the highest by sort key.
	assert.Equal(t, "v19", cat.Video[0].ID)
	assert.Equal(t, "v12", cat.Video[MaxVideoEntries-1].ID)
	assert.Equal(t, "a9", cat.Audio[0].ID)
}

func TestBuild_ReferenceScenario(t *testing.T) {
	cat := Build([]domain.RawFormat{
		{FormatID: "137", Ext: "mp4", VideoCodec: "avc1", Height: 1080, FPS: 30, Filesize: 52428800},
		{FormatID: "18", Ext: "mp4", VideoCodec: "avc1", Height: 360, FPS: 30, Filesize: 10485760},
	})

	require.Len(t, cat.Video, 2)
	assert.Equal(t, "1080p", cat.Video[0].Quality)
	assert.Equal(t, "50.0", cat.Video[0].Size)
	assert.Equal(t, "360p", cat.Video[1].Quality)
}

func TestBuild_EmptyInput(t *testing.T) {
	assert.True(t, Build(nil).Empty())
	assert.True(t, Build([]domain.RawFormat{}).Empty())
}

func TestCatalogEntry_Label(t *testing.T) {
	entry := domain.CatalogEntry{Quality: "1080p", Ext: "mp4", Size: "12.3"}
	assert.Equal(t, "1080p (MP4) [12.3MB]", entry.Label())

	entry.Size = domain.SizeUnknown
	assert.Equal(t, "1080p (MP4)", entry.Label())
}

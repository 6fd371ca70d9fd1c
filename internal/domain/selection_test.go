package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Directive_ByID(t *testing.T) {
	sel := Selection{Kind: SelectVideo, FormatID: "137"}

	directive, err := sel.Directive()
	require.NoError(t, err)
	assert.Equal(t, "137", directive.Format)
	assert.Nil(t, directive.Audio)
}

func TestSelection_Directive_Presets(t *testing.T) {
	tests := []struct {
		preset  AudioPreset
		codec   string
		quality string
	}{
		{PresetMP3Best, "mp3", "192"},
		{PresetMP3128, "mp3", "128"},
		{PresetMP364, "mp3", "64"},
		{PresetM4A, "m4a", ""},
		{PresetOpus, "opus", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			sel := Selection{Kind: SelectPreset, Preset: tt.preset}

			directive, err := sel.Directive()
			require.NoError(t, err)
			assert.Equal(t, "bestaudio/best", directive.Format)
			require.NotNil(t, directive.Audio)
			assert.Equal(t, tt.codec, directive.Audio.Codec)
			assert.Equal(t, tt.quality, directive.Audio.Quality)
		})
	}
}

func TestSelection_Directive_CancelRejected(t *testing.T) {
	sel := Selection{Kind: SelectCancel}

	_, err := sel.Directive()
	assert.Error(t, err)
}

func TestKindForExt(t *testing.T) {
	kind, ok := KindForExt(".mp3")
	require.True(t, ok)
	assert.Equal(t, KindAudio, kind)

	kind, ok = KindForExt(".MP4")
	require.True(t, ok)
	assert.Equal(t, KindVideo, kind)

	_, ok = KindForExt(".txt")
	assert.False(t, ok)
}

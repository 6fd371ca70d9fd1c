package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

func TestEncodeEntry_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.CatalogEntry
		kind  domain.SelectionKind
	}{
		{"video format", domain.CatalogEntry{ID: "137", Kind: domain.KindVideo}, domain.SelectVideo},
		{"audio format", domain.CatalogEntry{ID: "140", Kind: domain.KindAudio}, domain.SelectAudio},
		{"id with underscore", domain.CatalogEntry{ID: "hls_480", Kind: domain.KindVideo}, domain.SelectVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := EncodeEntry(tt.entry)
			sel, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, sel.Kind)
			assert.Equal(t, tt.entry.ID, sel.FormatID)
		})
	}
}

func TestEncodePreset_RoundTrip(t *testing.T) {
	for _, preset := range domain.AudioPresets() {
		token := EncodePreset(preset)
		require.NotEmpty(t, token)

		sel, err := Decode(token)
		require.NoError(t, err)
		assert.Equal(t, domain.SelectPreset, sel.Kind)
		assert.Equal(t, preset, sel.Preset)
	}
}

func TestDecode_Cancel(t *testing.T) {
	sel, err := Decode(TokenCancel)
	require.NoError(t, err)
	assert.Equal(t, domain.SelectCancel, sel.Kind)
}

func TestDecode_UnrecognizedTokenFails(t *testing.T) {
	tests := []string{
		"",
		"header_video",
		"v_",  // prefix with no identifier
		"a_",
		"audio_flac", // not a fixed preset
		"x_137",
	}

	for _, token := range tests {
		_, err := Decode(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestTokenNamespaces_NoCollision(t *testing.T) {
	// Fixed tokens must never land in the identifier-carrying prefixes.
	fixed := []string{TokenCancel}
	for _, preset := range domain.AudioPresets() {
		fixed = append(fixed, EncodePreset(preset))
	}

	for _, token := range fixed {
		sel, err := Decode(token)
		require.NoError(t, err)
		assert.NotEqual(t, domain.SelectVideo, sel.Kind, "token %q", token)
		assert.NotEqual(t, domain.SelectAudio, sel.Kind, "token %q", token)
	}
}

func TestDecode_PresetDirectives(t *testing.T) {
	sel, err := Decode("audio_mp3_128")
	require.NoError(t, err)

	directive, err := sel.Directive()
	require.NoError(t, err)
	assert.Equal(t, "bestaudio/best", directive.Format)
	require.NotNil(t, directive.Audio)
	assert.Equal(t, "mp3", directive.Audio.Codec)
	assert.Equal(t, "128", directive.Audio.Quality)
}

// Package selection maps format choices to the opaque tokens carried
// by transport buttons, and back. Tokens are only ever produced by
// this package, so decoding an unrecognized token fails loudly instead
// of defaulting.
package selection

import (
	"fmt"
	"strings"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// Identifier-carrying token prefixes. The fixed-token namespace below
// is reserved against these prefixes so the two spaces cannot collide.
const (
	videoPrefix = "v_"
	audioPrefix = "a_"
)

// TokenCancel is the fixed token for the cancel action
const TokenCancel = "cancel"

var presetTokens = map[domain.AudioPreset]string{
	domain.PresetMP3Best: "audio_mp3_best",
	domain.PresetMP3128:  "audio_mp3_128",
	domain.PresetMP364:   "audio_mp3_64",
	domain.PresetM4A:     "audio_m4a",
	domain.PresetOpus:    "audio_opus",
}

var tokenPresets = func() map[string]domain.AudioPreset {
	m := make(map[string]domain.AudioPreset, len(presetTokens))
	for preset, token := range presetTokens {
		m[token] = preset
	}
	return m
}()

// EncodeEntry encodes a catalog entry choice into its wire token
func EncodeEntry(e domain.CatalogEntry) string {
	if e.Kind == domain.KindAudio {
		return audioPrefix + e.ID
	}
	return videoPrefix + e.ID
}

// EncodePreset encodes a fixed audio preset into its wire token
func EncodePreset(p domain.AudioPreset) string {
	return presetTokens[p]
}

// Decode is the strict inverse of the encoders. An unrecognized token
// is a contract violation and returns an error.
func Decode(token string) (domain.Selection, error) {
	if token == TokenCancel {
		return domain.Selection{Kind: domain.SelectCancel}, nil
	}
	if preset, ok := tokenPresets[token]; ok {
		return domain.Selection{Kind: domain.SelectPreset, Preset: preset}, nil
	}
	if id, ok := strings.CutPrefix(token, videoPrefix); ok && id != "" {
		return domain.Selection{Kind: domain.SelectVideo, FormatID: id}, nil
	}
	if id, ok := strings.CutPrefix(token, audioPrefix); ok && id != "" {
		return domain.Selection{Kind: domain.SelectAudio, FormatID: id}, nil
	}
	return domain.Selection{}, fmt.Errorf("unrecognized selection token %q", token)
}

package domain

import "fmt"

// SelectionKind discriminates the selection variants
type SelectionKind string

const (
	SelectVideo  SelectionKind = "video"  // a catalog video format by id
	SelectAudio  SelectionKind = "audio"  // a catalog audio format by id
	SelectPreset SelectionKind = "preset" // one of the fixed audio presets
	SelectCancel SelectionKind = "cancel"
)

// AudioPreset identifies one of the fixed audio-only output configurations
// offered when no selectable format catalog exists
type AudioPreset string

const (
	PresetMP3Best AudioPreset = "mp3_best"
	PresetMP3128  AudioPreset = "mp3_128"
	PresetMP364   AudioPreset = "mp3_64"
	PresetM4A     AudioPreset = "m4a"
	PresetOpus    AudioPreset = "opus"
)

// AudioPresets returns the fixed presets in presentation order
func AudioPresets() []AudioPreset {
	return []AudioPreset{PresetMP3Best, PresetMP3128, PresetMP364, PresetM4A, PresetOpus}
}

// Label returns the user-facing caption for a preset button
func (p AudioPreset) Label() string {
	switch p {
	case PresetMP3Best:
		return "MP3 (Best Quality)"
	case PresetMP3128:
		return "MP3 (128kbps)"
	case PresetMP364:
		return "MP3 (64kbps)"
	case PresetM4A:
		return "M4A/AAC"
	case PresetOpus:
		return "Opus"
	}
	return string(p)
}

// Selection is the decoded form of a button press. Exactly one variant
// is populated depending on Kind.
type Selection struct {
	Kind     SelectionKind
	FormatID string      // SelectVideo, SelectAudio
	Preset   AudioPreset // SelectPreset
}

// AudioSpec describes an audio-extraction postprocessing step
type AudioSpec struct {
	Codec   string
	Quality string // target bitrate in kbps, empty for codec default
}

// DownloadDirective is the fully resolved instruction driving one
// download invocation
type DownloadDirective struct {
	Format string
	Audio  *AudioSpec
}

// Directive maps a selection to its download directive. Cancel has no
// directive and is rejected.
func (s Selection) Directive() (DownloadDirective, error) {
	switch s.Kind {
	case SelectVideo, SelectAudio:
		return DownloadDirective{Format: s.FormatID}, nil
	case SelectPreset:
		return presetDirective(s.Preset)
	}
	return DownloadDirective{}, fmt.Errorf("selection %q has no download directive", s.Kind)
}

func presetDirective(p AudioPreset) (DownloadDirective, error) {
	spec := map[AudioPreset]AudioSpec{
		PresetMP3Best: {Codec: "mp3", Quality: "192"},
		PresetMP3128:  {Codec: "mp3", Quality: "128"},
		PresetMP364:   {Codec: "mp3", Quality: "64"},
		PresetM4A:     {Codec: "m4a"},
		PresetOpus:    {Codec: "opus"},
	}
	audio, ok := spec[p]
	if !ok {
		return DownloadDirective{}, fmt.Errorf("unknown audio preset %q", p)
	}
	return DownloadDirective{Format: "bestaudio/best", Audio: &audio}, nil
}

package genredna

import (
	"io"
)

// PredictInput carries either an audio file or a preset sample id. Callers
// supply at most one; when both are set the file wins.
type PredictInput struct {
	File        io.Reader // Audio bytes, sent as the audio_file part
	FileName    string    // Original file name; defaults to audio.wav
	ContentType string    // Part content type; derived from FileName when empty
	SampleID    string    // Preset sample identifier, sent as sample_id
}

// Empty reports whether neither a file nor a sample id was supplied.
func (in PredictInput) Empty() bool {
	return in.File == nil && in.SampleID == ""
}

// Mode identifies which backend implementation was selected.
type Mode int

const (
	ModeSimulated Mode = iota
	ModeRemote
)

func (m Mode) String() string {
	switch m {
	case ModeSimulated:
		return "simulated"
	case ModeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

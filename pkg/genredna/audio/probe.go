// Package audio inspects uploaded audio files. Only WAV headers are decoded;
// other formats are accepted as opaque bytes.
package audio

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

type Metadata struct {
	Format     string
	Duration   time.Duration
	SampleRate int
	Channels   int
	BitDepth   int
}

// Probe reads the header of a WAV stream.
func Probe(r io.ReadSeeker) (*Metadata, error) {
	// IsValidFile reads the fmt chunk; Duration needs a fresh decoder from
	// the start of the stream and does not fill the format fields.
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrUnsupportedFormat
	}
	meta := &Metadata{
		Format:     "wav",
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind wav: %w", err)
	}
	dur, err := wav.NewDecoder(r).Duration()
	if err != nil {
		return nil, fmt.Errorf("read wav duration: %w", err)
	}
	meta.Duration = dur
	return meta, nil
}

// IsAudioContentType reports whether ct is an audio/* media type.
func IsAudioContentType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "audio/")
}

// IsWAV guesses from the file name and content type whether the upload is WAV.
func IsWAV(name, contentType string) bool {
	if strings.EqualFold(filepath.Ext(name), ".wav") {
		return true
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return true
	}
	return false
}

// WriteSilence encodes a 16-bit PCM WAV of the given length. It is used to
// produce sample fixtures.
func WriteSilence(w io.WriteSeeker, sampleRate, channels int, length time.Duration) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid wav format: %d Hz, %d channels", sampleRate, channels)
	}

	frames := int(length.Seconds() * float64(sampleRate))
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return enc.Close()
}

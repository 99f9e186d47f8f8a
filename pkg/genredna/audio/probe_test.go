package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFixture(t *testing.T, sampleRate, channels int, length time.Duration) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	if err := WriteSilence(f, sampleRate, channels, length); err != nil {
		t.Fatalf("WriteSilence: %v", err)
	}
	return path
}

func TestProbeWAV(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		channels   int
		length     time.Duration
	}{
		{"mono 1s", 11025, 1, time.Second},
		{"stereo 2s", 44100, 2, 2 * time.Second},
		{"stereo 22050 1s", 22050, 2, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.sampleRate, tt.channels, tt.length)
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			meta, err := Probe(f)
			if err != nil {
				t.Fatalf("Probe: %v", err)
			}
			if meta.SampleRate != tt.sampleRate {
				t.Errorf("SampleRate = %d, want %d", meta.SampleRate, tt.sampleRate)
			}
			if meta.Channels != tt.channels {
				t.Errorf("Channels = %d, want %d", meta.Channels, tt.channels)
			}
			if meta.BitDepth != 16 {
				t.Errorf("BitDepth = %d, want 16", meta.BitDepth)
			}
			diff := meta.Duration - tt.length
			if diff < -10*time.Millisecond || diff > 10*time.Millisecond {
				t.Errorf("Duration = %v, want ~%v", meta.Duration, tt.length)
			}
		})
	}
}

// The format fields must survive the rewind Probe does before reading the
// duration.
func TestProbeReportsFormatAfterRewind(t *testing.T) {
	path := writeFixture(t, 22050, 2, time.Second)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	want := Metadata{Format: "wav", SampleRate: 22050, Channels: 2, BitDepth: 16}
	got := *meta
	got.Duration = 0
	if got != want {
		t.Errorf("Probe = %+v, want %+v", got, want)
	}
	if meta.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", meta.Duration)
	}
}

func TestProbeRejectsNonWAV(t *testing.T) {
	_, err := Probe(bytes.NewReader([]byte("ID3\x03\x00 definitely an mp3")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestIsAudioContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"audio/wav", true},
		{"audio/mpeg", true},
		{"audio/ogg; codecs=opus", true},
		{"application/octet-stream", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAudioContentType(tt.ct); got != tt.want {
			t.Errorf("IsAudioContentType(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestIsWAV(t *testing.T) {
	if !IsWAV("song.WAV", "") {
		t.Error("expected .WAV extension to match")
	}
	if !IsWAV("blob", "audio/x-wav") {
		t.Error("expected audio/x-wav to match")
	}
	if IsWAV("song.mp3", "audio/mpeg") {
		t.Error("mp3 reported as wav")
	}
}

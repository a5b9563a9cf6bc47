// Package stt provides speech-to-text clients for the voice agent.
package stt

import (
	"context"
	"encoding/json"
	"io"
)

// Provider is the interface for speech-to-text services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error)
}

// TranscribeOptions configures transcription.
type TranscribeOptions struct {
	Model      string // Provider-specific model
	Language   string // ISO language code, or "multi" for language detection
	Format     string // Audio format hint (wav, mp3, webm, pcm)
	SampleRate int    // Audio sample rate in Hz
}

// Transcript is the result of transcription.
type Transcript struct {
	Text     string  // Full transcribed text
	Language string  // Detected or specified language
	Duration float64 // Audio duration in seconds
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func getEncoding(format string) string {
	switch format {
	case "pcm":
		return "pcm_s16le"
	case "mulaw":
		return "pcm_mulaw"
	default:
		return ""
	}
}

// Package tts provides text-to-speech clients for the voice agent.
package tts

import "context"

// Provider is the interface for text-to-speech services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Synthesize converts text to audio.
	Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error)
}

// SynthesizeOptions configures synthesis.
type SynthesizeOptions struct {
	Voice      string  // Voice identifier
	Language   string  // Language code
	Format     string  // Output format: "wav", "mp3", or "pcm"
	SampleRate int     // Sample rate in Hz
	Speed      float64 // Speed multiplier (0 means provider default)
}

// Synthesis is the result of text-to-speech conversion.
type Synthesis struct {
	Audio      []byte // Raw audio data
	Format     string // Audio format
	SampleRate int    // Sample rate in Hz
}

func getFormat(format string) string {
	if format == "" {
		return "wav"
	}
	return format
}

func getSampleRate(rate int) int {
	if rate <= 0 {
		return 44100
	}
	return rate
}

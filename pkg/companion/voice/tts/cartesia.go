package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

const (
	cartesiaBaseURL = "https://api.cartesia.ai"
	cartesiaVersion = "2025-04-16"

	cartesiaModelID = "sonic-2"

	// Fallback voice when a companion has no voice configured.
	defaultVoiceID = "a0e99841-438c-4a64-b679-ae501e7d6091"
)

// CartesiaProvider implements the TTS Provider interface using Cartesia's API.
type CartesiaProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// CartesiaOption configures the Cartesia TTS client.
type CartesiaOption func(*CartesiaProvider)

// WithCartesiaBaseURL overrides the API endpoint.
func WithCartesiaBaseURL(base string) CartesiaOption {
	return func(c *CartesiaProvider) { c.baseURL = base }
}

// WithCartesiaHTTPClient overrides the HTTP client.
func WithCartesiaHTTPClient(client *http.Client) CartesiaOption {
	return func(c *CartesiaProvider) { c.httpClient = client }
}

// NewCartesia creates a new Cartesia TTS provider.
func NewCartesia(apiKey string, opts ...CartesiaOption) *CartesiaProvider {
	c := &CartesiaProvider{
		apiKey:     apiKey,
		baseURL:    cartesiaBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider identifier.
func (c *CartesiaProvider) Name() string {
	return "cartesia"
}

// Synthesize converts text to audio using Cartesia's bytes API.
func (c *CartesiaProvider) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error) {
	voiceID := opts.Voice
	if voiceID == "" {
		voiceID = defaultVoiceID
	}

	reqBody := cartesiaTTSRequest{
		ModelID:    cartesiaModelID,
		Transcript: text,
		Voice: cartesiaVoiceSpec{
			Mode: "id",
			ID:   voiceID,
		},
		OutputFormat: c.buildOutputFormat(opts),
	}
	if opts.Language != "" {
		reqBody.Language = &opts.Language
	}
	if opts.Speed != 0 {
		reqBody.GenerationConfig = &cartesiaGenerationConfig{Speed: opts.Speed}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tts/bytes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Cartesia-Version", cartesiaVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, companion.NewProviderUnavailableError("cartesia", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return &Synthesis{Audio: []byte{}, Format: getFormat(opts.Format), SampleRate: getSampleRate(opts.SampleRate)}, nil
	}
	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, companion.NewProviderUnavailableError("cartesia",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(errBody)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, companion.NewProviderUnavailableError("cartesia", fmt.Errorf("read audio: %w", err))
	}

	return &Synthesis{
		Audio:      audio,
		Format:     getFormat(opts.Format),
		SampleRate: getSampleRate(opts.SampleRate),
	}, nil
}

func (c *CartesiaProvider) buildOutputFormat(opts SynthesizeOptions) cartesiaOutputFormat {
	rate := getSampleRate(opts.SampleRate)
	switch getFormat(opts.Format) {
	case "mp3":
		return cartesiaOutputFormat{Container: "mp3", SampleRate: rate, BitRate: 128000}
	case "pcm":
		return cartesiaOutputFormat{Container: "raw", Encoding: "pcm_s16le", SampleRate: rate}
	default:
		return cartesiaOutputFormat{Container: "wav", Encoding: "pcm_s16le", SampleRate: rate}
	}
}

type cartesiaTTSRequest struct {
	ModelID          string                    `json:"model_id"`
	Transcript       string                    `json:"transcript"`
	Voice            cartesiaVoiceSpec         `json:"voice"`
	OutputFormat     cartesiaOutputFormat      `json:"output_format"`
	Language         *string                   `json:"language,omitempty"`
	GenerationConfig *cartesiaGenerationConfig `json:"generation_config,omitempty"`
}

type cartesiaVoiceSpec struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type cartesiaOutputFormat struct {
	Container  string `json:"container"`
	Encoding   string `json:"encoding,omitempty"`
	SampleRate int    `json:"sample_rate"`
	BitRate    int    `json:"bit_rate,omitempty"`
}

type cartesiaGenerationConfig struct {
	Speed float64 `json:"speed,omitempty"`
}

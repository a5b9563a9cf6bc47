package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io"

	elevenLabsModelID = "eleven_turbo_v2_5"
)

// ElevenLabsProvider implements the TTS Provider interface using the
// ElevenLabs text-to-speech API.
type ElevenLabsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ElevenLabsOption configures the ElevenLabs TTS client.
type ElevenLabsOption func(*ElevenLabsProvider)

// WithElevenLabsBaseURL overrides the API endpoint.
func WithElevenLabsBaseURL(base string) ElevenLabsOption {
	return func(e *ElevenLabsProvider) { e.baseURL = base }
}

// WithElevenLabsHTTPClient overrides the HTTP client.
func WithElevenLabsHTTPClient(client *http.Client) ElevenLabsOption {
	return func(e *ElevenLabsProvider) { e.httpClient = client }
}

// NewElevenLabs creates a new ElevenLabs TTS provider.
func NewElevenLabs(apiKey string, opts ...ElevenLabsOption) *ElevenLabsProvider {
	e := &ElevenLabsProvider{
		apiKey:     apiKey,
		baseURL:    elevenLabsBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the provider identifier.
func (e *ElevenLabsProvider) Name() string {
	return "elevenlabs"
}

// Synthesize converts text to audio using the ElevenLabs API.
func (e *ElevenLabsProvider) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error) {
	if opts.Voice == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("voice is required", "voice")
	}

	reqBody := elevenLabsTTSRequest{
		Text:    text,
		ModelID: elevenLabsModelID,
	}
	if opts.Language != "" {
		reqBody.LanguageCode = &opts.Language
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := e.baseURL + "/v1/text-to-speech/" + url.PathEscape(opts.Voice)
	if of := elevenLabsOutputFormat(opts); of != "" {
		endpoint += "?output_format=" + of
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, companion.NewProviderUnavailableError("elevenlabs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, companion.NewProviderUnavailableError("elevenlabs",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(errBody)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, companion.NewProviderUnavailableError("elevenlabs", fmt.Errorf("read audio: %w", err))
	}

	return &Synthesis{
		Audio:      audio,
		Format:     getFormat(opts.Format),
		SampleRate: getSampleRate(opts.SampleRate),
	}, nil
}

type elevenLabsTTSRequest struct {
	Text         string  `json:"text"`
	ModelID      string  `json:"model_id"`
	LanguageCode *string `json:"language_code,omitempty"`
}

func elevenLabsOutputFormat(opts SynthesizeOptions) string {
	rate := getSampleRate(opts.SampleRate)
	switch getFormat(opts.Format) {
	case "mp3":
		return fmt.Sprintf("mp3_%d_128", rate)
	case "pcm":
		return fmt.Sprintf("pcm_%d", rate)
	default:
		return ""
	}
}

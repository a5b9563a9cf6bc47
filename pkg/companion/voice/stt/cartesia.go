package stt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

const (
	cartesiaBaseURL = "https://api.cartesia.ai"
	cartesiaVersion = "2025-04-16"

	defaultCartesiaModel = "ink-whisper"
)

// CartesiaProvider implements the STT Provider interface using Cartesia's API.
type CartesiaProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// CartesiaOption configures the Cartesia STT client.
type CartesiaOption func(*CartesiaProvider)

// WithCartesiaBaseURL overrides the API endpoint.
func WithCartesiaBaseURL(base string) CartesiaOption {
	return func(c *CartesiaProvider) { c.baseURL = base }
}

// WithCartesiaHTTPClient overrides the HTTP client.
func WithCartesiaHTTPClient(client *http.Client) CartesiaOption {
	return func(c *CartesiaProvider) { c.httpClient = client }
}

// NewCartesia creates a new Cartesia STT provider.
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

// Transcribe converts audio to text using Cartesia's batch STT API.
func (c *CartesiaProvider) Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error) {
	audioData, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "audio."+fileExtension(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultCartesiaModel
	}
	if err := mw.WriteField("model", model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if opts.Language != "" {
		if err := mw.WriteField("language", opts.Language); err != nil {
			return nil, fmt.Errorf("write language field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	reqURL := c.baseURL + "/stt"
	if opts.Format != "" || opts.SampleRate > 0 {
		u, _ := url.Parse(reqURL)
		q := u.Query()
		if encoding := getEncoding(opts.Format); encoding != "" {
			q.Set("encoding", encoding)
		}
		if opts.SampleRate > 0 {
			q.Set("sample_rate", fmt.Sprintf("%d", opts.SampleRate))
		}
		u.RawQuery = q.Encode()
		reqURL = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Cartesia-Version", cartesiaVersion)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, companion.NewProviderUnavailableError("cartesia", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, companion.NewProviderUnavailableError("cartesia",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var out cartesiaTranscriptionResponse
	if err := decodeJSON(resp.Body, &out); err != nil {
		return nil, companion.NewProviderUnavailableError("cartesia", fmt.Errorf("parse response: %w", err))
	}

	t := &Transcript{Text: out.Text}
	if out.Language != nil {
		t.Language = *out.Language
	}
	if out.Duration != nil {
		t.Duration = *out.Duration
	}
	return t, nil
}

type cartesiaTranscriptionResponse struct {
	Text     string   `json:"text"`
	Language *string  `json:"language,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

func fileExtension(format string) string {
	switch format {
	case "":
		return "wav"
	case "pcm", "mulaw":
		return "raw"
	default:
		return format
	}
}

package stt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

const (
	deepgramBaseURL = "https://api.deepgram.com"

	defaultDeepgramModel = "nova-3"
)

// DeepgramProvider implements the STT Provider interface using Deepgram's
// prerecorded listen API.
type DeepgramProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// DeepgramOption configures the Deepgram STT client.
type DeepgramOption func(*DeepgramProvider)

// WithDeepgramBaseURL overrides the API endpoint.
func WithDeepgramBaseURL(base string) DeepgramOption {
	return func(d *DeepgramProvider) { d.baseURL = base }
}

// WithDeepgramHTTPClient overrides the HTTP client.
func WithDeepgramHTTPClient(client *http.Client) DeepgramOption {
	return func(d *DeepgramProvider) { d.httpClient = client }
}

// NewDeepgram creates a new Deepgram STT provider.
func NewDeepgram(apiKey string, opts ...DeepgramOption) *DeepgramProvider {
	d := &DeepgramProvider{
		apiKey:     apiKey,
		baseURL:    deepgramBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the provider identifier.
func (d *DeepgramProvider) Name() string {
	return "deepgram"
}

// Transcribe converts audio to text using Deepgram's listen API.
func (d *DeepgramProvider) Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error) {
	model := opts.Model
	if model == "" {
		model = defaultDeepgramModel
	}

	u, err := url.Parse(d.baseURL + "/v1/listen")
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("model", model)
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	if opts.Language != "" {
		q.Set("language", opts.Language)
	}
	if encoding := getEncoding(opts.Format); encoding != "" {
		q.Set("encoding", encoding)
	}
	if opts.SampleRate > 0 {
		q.Set("sample_rate", fmt.Sprintf("%d", opts.SampleRate))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), audio)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", contentType(opts.Format))

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, companion.NewProviderUnavailableError("deepgram", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, companion.NewProviderUnavailableError("deepgram",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var out deepgramListenResponse
	if err := decodeJSON(resp.Body, &out); err != nil {
		return nil, companion.NewProviderUnavailableError("deepgram", fmt.Errorf("parse response: %w", err))
	}

	t := &Transcript{Duration: out.Metadata.Duration}
	if len(out.Results.Channels) > 0 && len(out.Results.Channels[0].Alternatives) > 0 {
		t.Text = out.Results.Channels[0].Alternatives[0].Transcript
	}
	if len(out.Results.Channels) > 0 && len(out.Results.Channels[0].DetectedLanguage) > 0 {
		t.Language = out.Results.Channels[0].DetectedLanguage
	}
	return t, nil
}

type deepgramListenResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func contentType(format string) string {
	switch format {
	case "wav", "":
		return "audio/wav"
	case "mp3":
		return "audio/mpeg"
	case "webm":
		return "audio/webm"
	case "ogg":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

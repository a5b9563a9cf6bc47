package llm

import (
	"context"

	"google.golang.org/genai"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

// DefaultGeminiModel is the default Gemini completion model.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini implements Provider over the Google GenAI SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini constructs the SDK client once; it is reused across requests.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, companion.NewProviderUnavailableError("gemini", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

// Name returns the provider identifier.
func (p *Gemini) Name() string {
	return "gemini"
}

// Complete sends a single prompt and returns the concatenated text reply.
func (p *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", companion.NewProviderUnavailableError("gemini", err)
	}
	text := resp.Text()
	if text == "" {
		return "", companion.NewAPIError("empty completion response")
	}
	return text, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

const (
	// DefaultOpenAIBaseURL is the default OpenAI API endpoint.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	// DefaultOpenAIModel matches the source product's completion model.
	DefaultOpenAIModel = "gpt-4o"
)

// OpenAI implements Provider over the Chat Completions API.
type OpenAI struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// OpenAIOption configures the OpenAI provider.
type OpenAIOption func(*OpenAI)

// WithOpenAIBaseURL overrides the API endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(p *OpenAI) { p.baseURL = url }
}

// WithOpenAIModel overrides the completion model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(p *OpenAI) {
		if model != "" {
			p.model = model
		}
	}
}

// WithOpenAIHTTPClient overrides the HTTP client.
func WithOpenAIHTTPClient(c *http.Client) OpenAIOption {
	return func(p *OpenAI) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// NewOpenAI creates a new OpenAI provider. Temperature is pinned to 0 so
// replies stay deterministic for a given prompt, matching the source product.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	p := &OpenAI{
		apiKey:     apiKey,
		baseURL:    DefaultOpenAIBaseURL,
		model:      DefaultOpenAIModel,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *OpenAI) Name() string {
	return "openai"
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends a single-user-message completion request.
func (p *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(&chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.chatCompletionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", companion.NewProviderUnavailableError("openai", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", p.parseError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", companion.NewAPIError("no choices in completion response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

type openaiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// parseError maps an OpenAI error response onto the canonical taxonomy.
func (p *OpenAI) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var oaiErr openaiErrorBody
	if err := json.Unmarshal(body, &oaiErr); err != nil || oaiErr.Error.Message == "" {
		return companion.NewProviderUnavailableError("openai",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	if resp.StatusCode == http.StatusBadRequest {
		return companion.NewInvalidRequestError(oaiErr.Error.Message)
	}
	return companion.NewProviderUnavailableError("openai",
		fmt.Errorf("%s: %s", oaiErr.Error.Type, oaiErr.Error.Message))
}

func (p *OpenAI) chatCompletionsURL() string {
	return strings.TrimRight(p.baseURL, "/") + "/chat/completions"
}

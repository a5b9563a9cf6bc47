package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

func TestOpenAIComplete_ReturnsMessageContent(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hey|how are you?"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", WithOpenAIBaseURL(srv.URL))
	got, err := p.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got != "hey|how are you?" {
		t.Fatalf("unexpected completion %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != DefaultOpenAIModel || gotReq.Temperature != 0 {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "hello" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestOpenAIComplete_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "overloaded", "type": "server_error"},
		})
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", WithOpenAIBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), "hello")
	if !companion.IsType(err, companion.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestOpenAIComplete_BadRequestMapsToInvalidRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "bad prompt", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", WithOpenAIBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), "hello")
	if !companion.IsType(err, companion.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestOpenAIComplete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	p := NewOpenAI("sk-test", WithOpenAIBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), "hello")
	if !companion.IsType(err, companion.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/config"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/lifecycle"
)

type HealthHandler struct{}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type ReadyHandler struct {
	Config    config.Config
	DB        Pinger
	Lifecycle *lifecycle.Lifecycle
}

func (h ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type readyResp struct {
		OK           bool     `json:"ok"`
		LLMProvider  string   `json:"llm_provider"`
		VoiceEnabled bool     `json:"voice_enabled"`
		Issues       []string `json:"issues,omitempty"`
	}

	issues := make([]string, 0, 4)

	if h.Lifecycle.IsDraining() {
		issues = append(issues, "draining")
	}

	switch h.Config.LLMProvider {
	case config.LLMProviderOpenAI, config.LLMProviderGemini:
	default:
		issues = append(issues, "invalid llm_provider")
	}
	if h.Config.StripeSecretKey == "" {
		issues = append(issues, "stripe secret key not configured")
	}
	if h.Config.MaxBodyBytes <= 0 {
		issues = append(issues, "max_body_bytes must be > 0")
	}
	if h.Config.ReadHeaderTimeout <= 0 || h.Config.ReadTimeout <= 0 {
		issues = append(issues, "timeouts must be > 0")
	}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			issues = append(issues, "database unreachable")
		}
	}

	ok := len(issues) == 0
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, readyResp{
		OK:           ok,
		LLMProvider:  h.Config.LLMProvider,
		VoiceEnabled: h.Config.VoiceEnabled,
		Issues:       issues,
	})
}

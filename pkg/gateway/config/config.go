package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LLM provider selection for companion replies.
const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

// Speech provider selection for the voice agent.
const (
	STTProviderDeepgram = "deepgram"
	STTProviderCartesia = "cartesia"

	TTSProviderCartesia   = "cartesia"
	TTSProviderElevenLabs = "elevenlabs"
)

type Config struct {
	Addr string

	// Postgres connection string for the account store.
	DatabaseURL string

	// CORS
	CORSAllowedOrigins map[string]struct{} // empty => disabled

	// Companion reply model.
	LLMProvider  string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	// Stripe checkout.
	StripeSecretKey      string
	StripePublishableKey string
	StripeMonthlyPrice   string
	StripeYearlyPrice    string
	StripeLifetimePrice  string
	StripeDefaultPrice   string
	CheckoutSuccessURL   string

	// WorkOS auth sync. Empty disables the sync endpoint.
	WorkOSAPIKey string

	// Voice agent.
	VoiceEnabled     bool
	STTProvider      string
	TTSProvider      string
	CartesiaAPIKey   string
	DeepgramAPIKey   string
	ElevenLabsAPIKey string

	// Turn detection for live calls.
	TurnNoActivityTimeout time.Duration
	TurnMinWords          int
	TurnSemanticCheck     bool

	MaxBodyBytes int64

	// Operational defaults
	ReadHeaderTimeout   time.Duration
	ReadTimeout         time.Duration
	ShutdownGracePeriod time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:                  envOr("PINKHONEY_ADDR", ":8080"),
		DatabaseURL:           envOr("DATABASE_URL", ""),
		CORSAllowedOrigins:    make(map[string]struct{}),
		LLMProvider:           envOr("PINKHONEY_LLM_PROVIDER", LLMProviderOpenAI),
		OpenAIAPIKey:          envOr("OPENAI_API_KEY", ""),
		OpenAIModel:           envOr("PINKHONEY_OPENAI_MODEL", "gpt-4o"),
		GeminiAPIKey:          envOr("GEMINI_API_KEY", ""),
		GeminiModel:           envOr("PINKHONEY_GEMINI_MODEL", "gemini-2.0-flash"),
		StripeSecretKey:       envOr("STRIPE_SECRET_KEY", ""),
		StripePublishableKey:  envOr("STRIPE_PUBLISHABLE_KEY", ""),
		StripeMonthlyPrice:    envOr("STRIPE_MONTHLY_PRICE_ID", "price_1QIYJBFD9BPCLY6DVkgw69h5"),
		StripeYearlyPrice:     envOr("STRIPE_YEARLY_PRICE_ID", "price_1QCVmqGAYW7BjnuPMO8DL3wa"),
		StripeLifetimePrice:   envOr("STRIPE_LIFETIME_PRICE_ID", "price_1QBm77GAYW7BjnuPMV5VgU0f"),
		StripeDefaultPrice:    envOr("STRIPE_DEFAULT_PRICE_ID", "price_1QIYJBFD9BPCLY6DVkgw69h5"),
		CheckoutSuccessURL:    envOr("PINKHONEY_SUCCESS_URL", "http://127.0.0.1:3000/subscribed"),
		WorkOSAPIKey:          envOr("WORKOS_API_KEY", ""),
		VoiceEnabled:          envBoolOr("PINKHONEY_VOICE_ENABLED", true),
		STTProvider:           envOr("PINKHONEY_STT_PROVIDER", STTProviderDeepgram),
		TTSProvider:           envOr("PINKHONEY_TTS_PROVIDER", TTSProviderCartesia),
		CartesiaAPIKey:        envOr("CARTESIA_API_KEY", ""),
		DeepgramAPIKey:        envOr("DEEPGRAM_API_KEY", ""),
		ElevenLabsAPIKey:      envOr("ELEVENLABS_API_KEY", ""),
		TurnNoActivityTimeout: envDurationOr("PINKHONEY_TURN_TIMEOUT", 3*time.Second),
		TurnMinWords:          envIntOr("PINKHONEY_TURN_MIN_WORDS", 1),
		TurnSemanticCheck:     envBoolOr("PINKHONEY_TURN_SEMANTIC_CHECK", true),
		MaxBodyBytes:          envInt64Or("PINKHONEY_MAX_BODY_BYTES", 1<<20), // 1 MiB
		ReadHeaderTimeout:     envDurationOr("PINKHONEY_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:           envDurationOr("PINKHONEY_READ_TIMEOUT", 30*time.Second),
		ShutdownGracePeriod:   envDurationOr("PINKHONEY_SHUTDOWN_GRACE_PERIOD", 30*time.Second),
	}

	for _, origin := range splitCSV(os.Getenv("PINKHONEY_CORS_ORIGINS")) {
		cfg.CORSAllowedOrigins[origin] = struct{}{}
	}

	if strings.TrimSpace(cfg.Addr) == "" {
		return Config{}, fmt.Errorf("PINKHONEY_ADDR must not be empty")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	switch cfg.LLMProvider {
	case LLMProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("OPENAI_API_KEY must be set when PINKHONEY_LLM_PROVIDER=openai")
		}
	case LLMProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return Config{}, fmt.Errorf("GEMINI_API_KEY must be set when PINKHONEY_LLM_PROVIDER=gemini")
		}
	default:
		return Config{}, fmt.Errorf("PINKHONEY_LLM_PROVIDER must be one of openai|gemini")
	}

	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY must be set")
	}
	if strings.TrimSpace(cfg.CheckoutSuccessURL) == "" {
		return Config{}, fmt.Errorf("PINKHONEY_SUCCESS_URL must not be empty")
	}

	if cfg.VoiceEnabled {
		switch cfg.STTProvider {
		case STTProviderDeepgram:
			if cfg.DeepgramAPIKey == "" {
				return Config{}, fmt.Errorf("DEEPGRAM_API_KEY must be set when PINKHONEY_STT_PROVIDER=deepgram")
			}
		case STTProviderCartesia:
			if cfg.CartesiaAPIKey == "" {
				return Config{}, fmt.Errorf("CARTESIA_API_KEY must be set when PINKHONEY_STT_PROVIDER=cartesia")
			}
		default:
			return Config{}, fmt.Errorf("PINKHONEY_STT_PROVIDER must be one of deepgram|cartesia")
		}

		switch cfg.TTSProvider {
		case TTSProviderCartesia:
			if cfg.CartesiaAPIKey == "" {
				return Config{}, fmt.Errorf("CARTESIA_API_KEY must be set when PINKHONEY_TTS_PROVIDER=cartesia")
			}
		case TTSProviderElevenLabs:
			if cfg.ElevenLabsAPIKey == "" {
				return Config{}, fmt.Errorf("ELEVENLABS_API_KEY must be set when PINKHONEY_TTS_PROVIDER=elevenlabs")
			}
		default:
			return Config{}, fmt.Errorf("PINKHONEY_TTS_PROVIDER must be one of cartesia|elevenlabs")
		}
	}

	if cfg.TurnNoActivityTimeout <= 0 {
		return Config{}, fmt.Errorf("PINKHONEY_TURN_TIMEOUT must be > 0")
	}
	if cfg.TurnMinWords <= 0 {
		return Config{}, fmt.Errorf("PINKHONEY_TURN_MIN_WORDS must be > 0")
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("PINKHONEY_MAX_BODY_BYTES must be > 0")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return Config{}, fmt.Errorf("PINKHONEY_READ_HEADER_TIMEOUT must be > 0")
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("PINKHONEY_READ_TIMEOUT must be > 0")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("PINKHONEY_SHUTDOWN_GRACE_PERIOD must be > 0")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64Or(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envIntOr(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envBoolOr(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/authsync"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/billing"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/catalog"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/chat"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/history"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/llm"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/stt"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/tts"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/config"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/lifecycle"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/metrics"
	gatewayserver "github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/server"
)

type appDeps struct {
	loadConfig   func() (config.Config, error)
	openDB       func(ctx context.Context, databaseURL string) (*sql.DB, error)
	signalNotify func(chan<- os.Signal, ...os.Signal)
	signalStop   func(chan<- os.Signal)
}

func defaultAppDeps() appDeps {
	return appDeps{
		loadConfig: config.LoadFromEnv,
		openDB:     openDB,
		signalNotify: func(c chan<- os.Signal, sig ...os.Signal) {
			signal.Notify(c, sig...)
		},
		signalStop: signal.Stop,
	}
}

func openDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := account.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func newLLMProvider(ctx context.Context, cfg config.Config) (llm.Provider, error) {
	switch cfg.LLMProvider {
	case config.LLMProviderOpenAI:
		return llm.NewOpenAI(cfg.OpenAIAPIKey, llm.WithOpenAIModel(cfg.OpenAIModel)), nil
	case config.LLMProviderGemini:
		return llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func newSpeechProviders(cfg config.Config) (stt.Provider, tts.Provider) {
	var sttProvider stt.Provider
	switch cfg.STTProvider {
	case config.STTProviderCartesia:
		sttProvider = stt.NewCartesia(cfg.CartesiaAPIKey)
	default:
		sttProvider = stt.NewDeepgram(cfg.DeepgramAPIKey)
	}

	var ttsProvider tts.Provider
	switch cfg.TTSProvider {
	case config.TTSProviderElevenLabs:
		ttsProvider = tts.NewElevenLabs(cfg.ElevenLabsAPIKey)
	default:
		ttsProvider = tts.NewCartesia(cfg.CartesiaAPIKey)
	}
	return sttProvider, ttsProvider
}

func buildDeps(ctx context.Context, cfg config.Config, db *sql.DB, logger *slog.Logger) (gatewayserver.Deps, error) {
	provider, err := newLLMProvider(ctx, cfg)
	if err != nil {
		return gatewayserver.Deps{}, err
	}

	accounts := account.NewStore(db)
	messages := history.NewStore(db)

	deps := gatewayserver.Deps{
		Accounts:  accounts,
		Responder: chat.NewResponder(provider, messages),
		Provider:  provider.Name(),
		Checkout: billing.NewCheckout(cfg.StripeSecretKey, billing.PriceTable{
			Monthly:  cfg.StripeMonthlyPrice,
			Yearly:   cfg.StripeYearlyPrice,
			Lifetime: cfg.StripeLifetimePrice,
			Default:  cfg.StripeDefaultPrice,
		}, cfg.CheckoutSuccessURL),
		Catalog:   catalog.NewStore(db),
		History:   messages,
		DB:        db,
		Lifecycle: &lifecycle.Lifecycle{},
		Metrics:   metrics.New("pinkhoney"),
	}

	if cfg.WorkOSAPIKey != "" {
		deps.Syncer = authsync.NewSyncer(cfg.WorkOSAPIKey, accounts)
	}

	if cfg.VoiceEnabled {
		sttProvider, ttsProvider := newSpeechProviders(cfg)
		turn := voice.DefaultTurnConfig()
		turn.NoActivityTimeout = cfg.TurnNoActivityTimeout
		turn.MinWords = cfg.TurnMinWords
		turn.SemanticCheck = cfg.TurnSemanticCheck

		deps.Calls = voice.NewRegistry()
		deps.Agent = voice.NewAgent(sttProvider, ttsProvider, provider, turn, logger)
		deps.TTS = ttsProvider
	}

	return deps, nil
}

func buildHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
	}
}

func run(ctx context.Context, logger *slog.Logger, deps appDeps) error {
	if deps.loadConfig == nil || deps.openDB == nil {
		return errors.New("missing dependency")
	}
	if deps.signalNotify == nil || deps.signalStop == nil {
		return errors.New("missing signal dependency")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := deps.openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	serverDeps, err := buildDeps(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	gw := gatewayserver.New(cfg, serverDeps, logger)
	httpSrv := buildHTTPServer(cfg, gw.Handler())

	logger.Info("starting backend",
		"addr", cfg.Addr,
		"llm_provider", cfg.LLMProvider,
		"voice_enabled", cfg.VoiceEnabled,
	)

	listenErrCh := make(chan error, 1)
	go func() {
		err := httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErrCh <- err
			return
		}
		listenErrCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	deps.signalNotify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer deps.signalStop(sigCh)

	select {
	case err := <-listenErrCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	serverDeps.Lifecycle.SetDraining(true)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := <-listenErrCh; err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("backend stopped")
	return nil
}

func runMain(ctx context.Context, stderr io.Writer, deps appDeps) int {
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(stderr, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(stderr, "pinkhoney: load .env: %v\n", err)
		return 1
	}

	if err := run(ctx, logger, deps); err != nil {
		fmt.Fprintf(stderr, "pinkhoney: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(runMain(context.Background(), os.Stderr, defaultAppDeps()))
}

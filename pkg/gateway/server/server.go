package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/tts"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/config"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/handlers"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/lifecycle"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/metrics"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/mw"
)

// Deps carries the wired domain components the routes dispatch to.
type Deps struct {
	Accounts  handlers.AccountStore
	Responder handlers.Responder
	Provider  string
	Checkout  handlers.CheckoutInitiator
	Catalog   handlers.CatalogLister
	History   handlers.HistoryReader
	Syncer    handlers.AccountSyncer
	Calls     *voice.Registry
	Agent     *voice.Agent
	TTS       tts.Provider
	DB        handlers.Pinger
	Lifecycle *lifecycle.Lifecycle
	Metrics   *metrics.Metrics
}

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	deps   Deps
	mux    *http.ServeMux
}

func New(cfg config.Config, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		deps:   deps,
		mux:    http.NewServeMux(),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.Handle("/", handlers.NotFoundHandler{})
	s.mux.Handle("/healthz", handlers.HealthHandler{})
	s.mux.Handle("/readyz", handlers.ReadyHandler{Config: s.cfg, DB: s.deps.DB, Lifecycle: s.deps.Lifecycle})
	if s.deps.Metrics != nil {
		s.mux.Handle("/metrics", s.deps.Metrics.Handler())
	}

	s.mux.Handle("/get_ai_response", handlers.ChatHandler{
		Responder: s.deps.Responder,
		Provider:  s.deps.Provider,
		Logger:    s.logger,
		Metrics:   s.deps.Metrics,
	})
	s.mux.Handle("/check_email", handlers.CheckEmailHandler{Accounts: s.deps.Accounts, Logger: s.logger})
	s.mux.Handle("/change_subscription", handlers.ChangeSubscriptionHandler{Accounts: s.deps.Accounts, Logger: s.logger})
	s.mux.Handle("/increase_tokens", handlers.IncreaseTokensHandler{Accounts: s.deps.Accounts, Logger: s.logger})
	s.mux.Handle("/create_checkout_session", handlers.CheckoutHandler{
		Checkout: s.deps.Checkout,
		Logger:   s.logger,
		Metrics:  s.deps.Metrics,
	})

	s.mux.Handle("/api/companions", handlers.CompanionsHandler{Catalog: s.deps.Catalog})
	s.mux.Handle("/api/messages", handlers.MessagesHandler{History: s.deps.History})

	if s.deps.Syncer != nil {
		s.mux.Handle("/api/auth/sync", handlers.AuthSyncHandler{Syncer: s.deps.Syncer, Logger: s.logger})
	}

	if s.cfg.VoiceEnabled && s.deps.Agent != nil {
		s.mux.Handle("/api/tts", handlers.TTSHandler{TTS: s.deps.TTS, Logger: s.logger})
		s.mux.Handle("/api/voice/initiate", handlers.VoiceInitiateHandler{
			Calls:   s.deps.Calls,
			Logger:  s.logger,
			Metrics: s.deps.Metrics,
		})
		s.mux.Handle("/api/voice/end", handlers.VoiceEndHandler{
			Calls:   s.deps.Calls,
			Logger:  s.logger,
			Metrics: s.deps.Metrics,
		})
		s.mux.Handle("/api/voice/session", handlers.VoiceSessionHandler{
			Calls:  s.deps.Calls,
			Agent:  s.deps.Agent,
			Logger: s.logger,
			Upgrader: websocket.Upgrader{
				CheckOrigin: s.checkWSOrigin,
			},
		})
	}
}

// checkWSOrigin mirrors the HTTP CORS allowlist for WebSocket upgrades.
// No configured origins means same-host only.
func (s *Server) checkWSOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.cfg.CORSAllowedOrigins) == 0 {
		u, err := r.URL.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	}
	_, ok := s.cfg.CORSAllowedOrigins[origin]
	return ok
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = mw.Metrics(s.deps.Metrics, h)
	h = mw.MaxBody(s.cfg.MaxBodyBytes, h)
	h = mw.CORS(s.cfg, h)
	h = mw.Recover(s.logger, h)
	h = mw.AccessLog(s.logger, h)
	h = mw.RequestID(h)
	return h
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scambait/honeypot/internal/honeypot"
	httpmiddleware "github.com/scambait/honeypot/internal/http/middleware"
	"github.com/scambait/honeypot/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Handler            *honeypot.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Probes answered blandly; scanners should see nothing
	// interesting here.
	r.Get("/", cfg.Handler.Probe)
	r.Get("/health", cfg.Handler.Health)

	r.Route("/api", func(api chi.Router) {
		api.Post("/honeypot", cfg.Handler.Engage)
		// Legacy alias kept for callers wired to the older path.
		api.Post("/endpoint", cfg.Handler.Engage)
		api.Get("/honeypot", cfg.Handler.Probe)

		api.Get("/session/{sessionID}", cfg.Handler.GetSession)
		api.Get("/sessions", cfg.Handler.ListSessions)
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	return r
}

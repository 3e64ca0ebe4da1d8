package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kingluffyxx/portfolio/internal/http/handlers"
	httpmiddleware "github.com/kingluffyxx/portfolio/internal/http/middleware"
	"github.com/kingluffyxx/portfolio/internal/site"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SlotsHandler       *handlers.SlotsHandler
	BookHandler        *handlers.BookHandler
	ContactHandler     *handlers.ContactHandler
	SiteHandler        *site.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Contact-form throttle; zero rate disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.SlotsHandler != nil {
			api.Get("/booking-calendar/slots", cfg.SlotsHandler.GetSlots)
		}
		if cfg.BookHandler != nil {
			api.Post("/booking-calendar/book", cfg.BookHandler.CreateBooking)
		}
		if cfg.ContactHandler != nil {
			contactRoute := api.With()
			if cfg.RateLimitPerSecond > 0 {
				contactRoute = api.With(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
			}
			contactRoute.Post("/contact", cfg.ContactHandler.Submit)
		}
		if cfg.SiteHandler != nil {
			api.Get("/site/content", cfg.SiteHandler.GetContent)
		}
	})

	return r
}

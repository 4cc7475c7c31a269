// Package api wires the Chi router: middleware, routes, and handler
// dependencies.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rikka-bot/rikka-data/internal/aggregate"
	"github.com/rikka-bot/rikka-data/internal/api/handler"
	"github.com/rikka-bot/rikka-data/internal/binding"
	"github.com/rikka-bot/rikka-data/internal/cache"
	"github.com/rikka-bot/rikka-data/internal/config"
	"github.com/rikka-bot/rikka-data/internal/db"
	"github.com/rikka-bot/rikka-data/internal/provider"
	"github.com/rikka-bot/rikka-data/internal/provider/lxns"
	"github.com/rikka-bot/rikka-data/internal/song"
)

// Deps bundles the shared dependencies the router hands to handlers.
type Deps struct {
	Pool     *db.Pool
	Cache    *cache.Cache
	Config   *config.Config
	Scores   *aggregate.Service
	Bindings *binding.Store
	Songs    *song.Store
	Registry *provider.Registry
	LXNS     *lxns.Provider
	Logger   *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   deps.Config.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if deps.Config.RateLimitEnabled {
		r.Use(RateLimitMiddleware(deps.Config.RateLimitRequests, deps.Config.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(deps.Pool, deps.Cache, deps.Config, deps.Scores,
		deps.Bindings, deps.Songs, deps.Registry, deps.LXNS, deps.Logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Binding
		r.Route("/bind", func(r chi.Router) {
			r.Post("/lxns", h.BindLxns)
			r.Post("/divingfish", h.BindDivingFish)
			r.Post("/friend-code", h.BindFriendCode)
			r.Post("/provider", h.BindProvider)
		})

		// Player scores
		r.Route("/player/{userID}", func(r chi.Router) {
			r.Get("/info", h.GetPlayerInfo)
			r.Get("/b50", h.GetBest50)
			r.Get("/ap50", h.GetAP50)
			r.Get("/recent", h.GetRecent)
			r.Get("/scores", h.GetScoresFiltered)
			r.Get("/song/{songID}", h.GetSongScores)
		})

		// Song catalog
		r.Get("/song/search", h.SearchSong)
		r.Get("/song/{songID}", h.GetSong)
	})

	return r
}

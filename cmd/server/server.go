// cmd/server/server.go
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/api"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/api/dashboard"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/config"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/ratelimit"
)

func newServer(cfg *config.Config, limiter *ratelimit.Limiter) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newHandler(cfg, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newHandler(cfg *config.Config, limiter *ratelimit.Limiter) http.Handler {
	router := http.NewServeMux()

	var reportMiddleware func(http.Handler) http.Handler
	if limiter != nil {
		reportMiddleware = limiter.Middleware
	}
	dashboard.RegisterRoutes(router, reportMiddleware)

	// Setup middleware chain
	return api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		corsMiddleware(cfg),
	)
}

// corsMiddleware lets the provider dashboard SPA call the API from its own
// origin. With no configured origins every origin is allowed in development
// and none otherwise.
func corsMiddleware(cfg *config.Config) api.Middleware {
	opts := cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if len(opts.AllowedOrigins) == 0 {
		if cfg.IsDevelopment() {
			opts.AllowedOrigins = []string{"*"}
		} else {
			// an empty origin list means "all" to the cors package
			opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
		}
	}
	return cors.Handler(opts)
}

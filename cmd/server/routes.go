package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/chi-demo/middleware"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"github.com/tendant/simple-site/pkg/siteconfig/api"
	"github.com/tendant/simple-site/pkg/siteconfig/config"
)

// mountRoutes registers /metrics and the site config API on r. When an API
// key hash is configured the API group requires it; JWT auth additionally
// guards /configs when a secret is set.
func mountRoutes(r chi.Router, cfg *config.ServerConfig, svc siteconfig.Service, logger *slog.Logger) error {
	r.Handle("/metrics", promhttp.Handler())

	handlerOpts := []api.HandlerOption{
		api.WithPreviewDomain(cfg.PreviewDomain),
		api.WithLogger(logger),
	}
	if cfg.JWTSecret != "" {
		handlerOpts = append(handlerOpts, api.WithJWTAuth(jwtauth.New("HS256", []byte(cfg.JWTSecret), nil)))
	}
	handler := api.NewConfigHandler(svc, handlerOpts...)

	var apiKeyMiddleware func(next http.Handler) http.Handler
	if cfg.APIKeySHA256 != "" {
		mw, err := middleware.ApiKeyMiddleware(middleware.ApiKeyConfig{
			APIKeys: map[string]string{"site-admin": cfg.APIKeySHA256},
		})
		if err != nil {
			return fmt.Errorf("failed to initialize API key middleware: %w", err)
		}
		apiKeyMiddleware = mw
	}

	r.Group(func(r chi.Router) {
		r.Use(api.RequestLogger(logger))
		if apiKeyMiddleware != nil {
			r.Use(apiKeyMiddleware)
		}
		handler.Register(r)
	})
	return nil
}

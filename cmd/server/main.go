package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-site/pkg/siteconfig/config"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	opts := []config.Option{}
	if path := os.Getenv("SITE_CONFIG_FILE"); path != "" {
		opts = append(opts, config.WithFile(path))
	}
	opts = append(opts, config.WithEnv("SITE_"))

	serverConfig, err := config.Load(opts...)
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, cleanup, err := serverConfig.BuildService(ctx)
	if err != nil {
		cleanup()
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	if err := mountRoutes(server.R, serverConfig, svc, slog.Default()); err != nil {
		slog.Error("Failed to mount routes", "err", err)
		os.Exit(1)
	}

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(serverConfig.Environment),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-KEY"},
		AllowCredentials: false,
		MaxAge:           300,
	})(server.R)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", serverConfig.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Site config server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"database", serverConfig.DatabaseType,
			"generation", serverConfig.GeminiAPIKey != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
	}

	slog.Info("Server exiting")
}

func corsOrigins(environment string) []string {
	if environment == "development" {
		return []string{"*"}
	}
	return []string{"https://*", "http://localhost:*"}
}

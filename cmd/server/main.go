package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tryon-backend/internal/application/services"
	"tryon-backend/internal/application/usecases"
	"tryon-backend/internal/config"
	"tryon-backend/internal/domain/repositories"
	domainservices "tryon-backend/internal/domain/services"
	"tryon-backend/internal/domain/valueobjects"
	"tryon-backend/internal/infrastructure/api"
	"tryon-backend/internal/infrastructure/external"
	infraservices "tryon-backend/internal/infrastructure/services"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	cfg, err := config.InitConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	catalog := valueobjects.DefaultCatalog()

	aiService, err := newAIService(cfg, catalog)
	if err != nil {
		log.Fatalf("Failed to create remote provider: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, catalog, aiService); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// run serves until ctx is done or the listener fails. It owns aiService and
// closes it on every return path.
func run(ctx context.Context, cfg *config.Config, catalog *valueobjects.GarmentCatalog, aiService repositories.TryOnAIService) error {
	if aiService != nil {
		defer func() {
			if err := aiService.Close(); err != nil {
				slog.Warn("Failed to close remote provider", "error", err)
			}
		}()
	}

	// domain layer
	tryOnDomainService := domainservices.NewTryOnDomainService(aiService, domainservices.NewOverlayRenderer(catalog))

	// application layer
	tryOnUseCase := usecases.NewTryOnUseCase(tryOnDomainService)
	measurementsUseCase := usecases.NewMeasurementsUseCase()
	parameterService := services.NewParameterService()

	// API layer
	handler := api.NewTryOnHandler(tryOnUseCase, measurementsUseCase, parameterService, cfg.Server.MaxBodyBytes)
	router := api.NewRouter(handler, api.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AccessLog:      os.Stdout,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port, "provider", cfg.Remote.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newAIService returns nil when the remote step is disabled.
func newAIService(cfg *config.Config, catalog *valueobjects.GarmentCatalog) (repositories.TryOnAIService, error) {
	switch cfg.Remote.Provider {
	case config.ProviderHuggingFace:
		slog.Info("[boot] Using Hugging Face", "url", cfg.HuggingFace.URL, "timeout", cfg.HuggingFace.Timeout)
		return external.NewHuggingFaceAIService(cfg.HuggingFace.APIKey, cfg.HuggingFace.URL, cfg.HuggingFace.Timeout, catalog)
	case config.ProviderGemini:
		slog.Info("[boot] Using Gemini", "model", cfg.Gemini.Model)
		pool := infraservices.NewGenAIClientPool(&repositories.GenAIClientConfig{APIKey: cfg.Gemini.APIKey})
		return external.NewGeminiAIService(pool, cfg.Gemini.Model, catalog), nil
	case config.ProviderNone:
		slog.Info("[boot] Remote provider disabled, every request uses the overlay")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown remote provider %q", cfg.Remote.Provider)
	}
}

func setupLogger(cfg config.Log) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/iamvkosarev/prompt-form/config"
	"github.com/iamvkosarev/prompt-form/internal/handler"
	"github.com/iamvkosarev/prompt-form/internal/usecase"
	openai_tools "github.com/iamvkosarev/prompt-form/pkg/openai-tools"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"net"
	"net/http"
	"time"
)

// NewHandler wires the provider, the gateway and the router.
func NewHandler(cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	if !cfg.OpenAI.APIKeyConfigured() {
		logger.Warn("OPENAI_API_KEY is not set, completion requests will fail")
	}

	openAIUsecase, err := usecase.NewOpenAIUsecase(cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai usecase: %w", err)
	}

	gatewayDeps := usecase.GatewayUsecaseDeps{
		Provider: openAIUsecase,
		Logger:   logger.Named("GatewayUsecase"),
	}
	if cfg.OpenAI.CountPromptTokens {
		gatewayDeps.TokenCounter = openai_tools.CountToken
	}
	gatewayUsecase := usecase.NewGatewayUsecase(gatewayDeps, cfg.OpenAI)

	router, err := handler.NewRouter(
		cfg.HTTP, handler.RouterDeps{
			Gateway: gatewayUsecase,
			Logger:  logger,
			Model:   cfg.OpenAI.OpenAIModel,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	return router, nil
}

// Run listens on cfg.HTTP.Addr and serves until ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.HTTP.Addr, err)
	}
	return Serve(ctx, ln, cfg, logger)
}

// Serve serves on ln until ctx is done, then shuts the server down within
// cfg.HTTP.ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	if logger.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	}

	h, err := NewHandler(cfg, logger)
	if err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(
		func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		},
	)
	p.Go(
		func(ctx context.Context) error {
			<-ctx.Done()
			logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down http server: %w", err)
			}
			logger.Info("HTTP server stopped")
			return nil
		},
	)
	return p.Wait()
}

package cmd

import (
	"fmt"
	"github.com/iamvkosarev/prompt-form/config"
	"github.com/iamvkosarev/prompt-form/internal/app"
	"github.com/iamvkosarev/prompt-form/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os/signal"
	"syscall"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the prompt form and the completion endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info(
				"Starting prompt form",
				zap.String("addr", cfg.HTTP.Addr),
				zap.String("model", cfg.OpenAI.OpenAIModel),
			)
			return app.Run(ctx, cfg, log)
		},
	}
}

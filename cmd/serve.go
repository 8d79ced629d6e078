package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/erdgrade/internal/config"
	"github.com/abhisek/erdgrade/internal/llm"
	"github.com/abhisek/erdgrade/internal/logging"
	"github.com/abhisek/erdgrade/internal/metrics"
	"github.com/abhisek/erdgrade/internal/server"
	"github.com/abhisek/erdgrade/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP grading service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug, _ = cmd.Flags().GetBool("debug")
		}
		if cfg.DBPath != "" && !cmd.Flags().Changed("db") {
			if err := cmd.Flags().Set("db", cfg.DBPath); err != nil {
				return err
			}
		}

		logger, err := logging.Init(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}

		var repo store.EventRepo
		if st, err := openStore(cmd); err != nil {
			logger.Warn("event log unavailable; model calls will not be recorded", "error", err)
		} else {
			defer st.Close()
			repo = st.EventRepo()
		}

		opts := server.Options{
			Metrics: metrics.New(),
			Logger:  logger,
			Version: version,
		}
		provider, err := llm.NewProviderFromEnv(ctx, repo, logger)
		if err != nil {
			logger.Warn("model provider not configured; detection disabled and feedback will use templates",
				"error", err)
		} else {
			opts.Provider = provider
			logger.Info("model provider ready", "model", provider.ModelID())
		}

		srv := server.New(cfg, opts)
		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		slog.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ERDGRADE_HTTP_ADDR)")
	serveCmd.Flags().Bool("debug", false, "Include grader debug data in responses")
}

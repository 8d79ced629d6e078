package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/erdgrade/internal/config"
	"github.com/abhisek/erdgrade/internal/llm"
	"github.com/abhisek/erdgrade/internal/logging"
	"github.com/abhisek/erdgrade/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "erdgrade",
	Short: "Grade entity-relationship diagrams",
	Long: "erdgrade scores student ER diagrams against a reference answer and rubric,\n" +
		"reads diagrams and rubrics from images with a vision model, and serves both over HTTP.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		level := os.Getenv("ERDGRADE_LOG_LEVEL")
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = "debug"
		}
		format := os.Getenv("ERDGRADE_LOG_FORMAT")
		if format == "" {
			format = "text"
		}
		_, err := logging.Init(os.Stderr, level, format)
		return err
	},
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event log (overrides ERDGRADE_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ERDGRADE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log named by the flags and environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openProvider opens the event log and builds a model provider that records
// into it. A store that cannot be opened only disables event logging. The
// returned close func is always non-nil.
func openProvider(cmd *cobra.Command) (llm.Provider, func(), error) {
	var repo store.EventRepo
	closeFn := func() {}

	st, err := openStore(cmd)
	if err != nil {
		slog.Warn("event log unavailable; model calls will not be recorded", "error", err)
	} else {
		repo = st.EventRepo()
		closeFn = func() { st.Close() }
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), repo, slog.Default())
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("model provider not configured: %w", err)
	}
	return provider, closeFn, nil
}

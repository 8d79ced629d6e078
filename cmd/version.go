package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/abhisek/erdgrade/internal/llm"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the model detection and feedback would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "erdgrade %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

		cfg, err := llm.ResolveConfigFromEnv()
		if err != nil {
			fmt.Fprintf(out, "model:    none (%v)\n", err)
			fmt.Fprintln(out, "          grading works; detection is disabled and feedback uses templates")
			return nil
		}
		fmt.Fprintf(out, "provider: %s\n", cfg.Provider)
		fmt.Fprintf(out, "model:    %s\n", cfg.Model())
		if c := llm.LookupCost(cfg.Model()); c != nil {
			fmt.Fprintf(out, "pricing:  $%.2f in / $%.2f out per 1M tokens\n", c.InputPerMTok, c.OutputPerMTok)
		}
		return nil
	},
}

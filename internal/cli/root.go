package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"diffscope/internal/extract"
	"diffscope/pkg/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "diffscope",
	Short: "Structural context extraction for pull request intent review",
	Long: `diffscope parses the files touched by a diff, finds the definitions
the changed lines fall into, and extracts their full source together
with the imports and calls they rely on: a compact structural context
an LLM reviewer can reason about without seeing whole files.

Example usage:
  diffscope context --diff changes.patch   # Print structural context for a diff
  diffscope check --pr 42                  # Evaluate a PR against its linked issue`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "path to configuration file")
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(cfgFile)
}

func extractorConfig(cfg *config.Config) extract.Config {
	return extract.Config{
		Workers:     cfg.Extractor.Workers,
		FileTimeout: time.Duration(cfg.Extractor.FileTimeoutSeconds) * time.Second,
		Exclude:     cfg.Extractor.Exclude,
	}
}

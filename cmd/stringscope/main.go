package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/its-jojoo/stringscope/internal/config"
	"github.com/its-jojoo/stringscope/internal/errors"
	"github.com/its-jojoo/stringscope/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stringscope",
	Short: "String analyzer service",
	Long: `stringscope analyzes strings (length, palindrome, character frequency,
word count, content hash), stores them, and answers structured and
natural-language filter queries over HTTP.

Examples:
  stringscope serve                       # Start the HTTP API
  stringscope analyze "A man a plan"      # Print properties without storing
  stringscope translate "single word palindromes"
  stringscope export --out strings.json   # Dump stored records`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./stringscope.toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig reads configuration and initializes the logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return nil, errors.Wrap(err, "initialize logger")
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

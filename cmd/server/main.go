// Civil Toolbox server: the backend of the civil-engineering calculator
// dashboard.
//
// It provides:
//   - Tool Registry and Catalog Filter
//   - Calculation Engine (stateless evaluation and calculator sessions)
//   - Assistant Gateway (single-shot chat and conversations)
//   - A small CLI for listing tools and running a calculation offline

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toolbox",
	Short: "Civil engineering calculator toolbox",
	Long: `Civil Toolbox serves a catalog of civil-engineering calculators and an
AI assistant over HTTP.

Available subcommands:
  serve - Run the HTTP server (default)
  tools - List and search the calculator catalog
  calc  - Evaluate one calculator and print its report`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, toolsCmd, calcCmd)
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

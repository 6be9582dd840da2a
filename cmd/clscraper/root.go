package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clscraper",
	Short: "A resumable scraper for the CourtListener REST API",
	Long: `clscraper pulls paginated records from the CourtListener REST API (v4)
and persists them incrementally as CSV batches, locally or to
S3-compatible object storage.

Every job keeps a durable checkpoint of the last fetched page, so an
interrupted or rate-limited run picks up exactly where it left off.
Output files are named by the page range they cover, allowing the full
dataset to be reconstructed by concatenating files in page order.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .clscraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clscraper/pkg/checkpoint"
	"clscraper/pkg/config"
	"clscraper/pkg/logger"
	"clscraper/pkg/scraper"
)

var checkpointJudgeID string

// checkpointCmd groups checkpoint inspection and reset
var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect or reset a job's fetch checkpoint",
}

var checkpointShowCmd = &cobra.Command{
	Use:   "show <endpoint>",
	Short: "Show the stored checkpoint for an endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, map[string]interface{}{"log-level": logLevel})
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		mgr, err := checkpoint.NewManager(cfg.Checkpoint.Dir, args[0], checkpointJudgeID, logger.GetLogger())
		if err != nil {
			return err
		}

		if !mgr.Exists() {
			fmt.Println("No checkpoint found; the next run starts from page 1.")
			return nil
		}

		cp, err := mgr.Read()
		if err != nil {
			return err
		}

		fmt.Printf("Checkpoint:    %s\n", mgr.Path())
		fmt.Printf("Pages fetched: %d\n", cp.PagesFetched)
		if cp.LastURL == "" {
			fmt.Println("Last URL:      (pagination exhausted)")
		} else {
			fmt.Printf("Last URL:      %s\n", cp.LastURL)
		}
		fmt.Printf("Updated:       %s\n", cp.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var checkpointResetCmd = &cobra.Command{
	Use:   "reset <endpoint>",
	Short: "Reset an endpoint's checkpoint so the next run starts from page 1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, map[string]interface{}{"log-level": logLevel})
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		job := scraper.Job{Endpoint: args[0], SubKey: checkpointJudgeID}
		if err := resetCheckpoint(cfg, job, logger.GetLogger()); err != nil {
			return err
		}
		fmt.Printf("Checkpoint for %s reset.\n", job.Key())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
	checkpointCmd.AddCommand(checkpointShowCmd)
	checkpointCmd.AddCommand(checkpointResetCmd)
	checkpointCmd.PersistentFlags().StringVar(&checkpointJudgeID, "judge-id", "", "judge author id for per-judge jobs")
}

// resetCheckpoint clears the stored progress for a job
func resetCheckpoint(cfg *config.Config, job scraper.Job, log logger.Logger) error {
	mgr, err := checkpoint.NewManager(cfg.Checkpoint.Dir, job.Endpoint, job.SubKey, log)
	if err != nil {
		return err
	}
	return mgr.Reset()
}

// cmdContext is the base context for command execution
func cmdContext() context.Context {
	return context.Background()
}

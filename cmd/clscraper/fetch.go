package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clscraper/pkg/auth"
	"clscraper/pkg/config"
	"clscraper/pkg/courtlistener"
	"clscraper/pkg/logger"
	"clscraper/pkg/ratelimit"
	"clscraper/pkg/scraper"
	"clscraper/pkg/storage"
)

var (
	// Fetch command flags
	maxPages      int
	judgeID       string
	outputDir     string
	storageKind   string
	batchPages    int
	checkpointDir string
	resetFirst    bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <endpoint>",
	Short: "Fetch pages from a CourtListener endpoint, resuming from the last checkpoint",
	Long: `Fetch paginated records from a CourtListener endpoint and write them as
CSV batches. The run resumes from the endpoint's checkpoint; use
--max-pages to bound a single invocation (the API allows 5000 requests
per day).

Supported endpoints: positions, education, financial-disclosures, and
search (per-judge dockets; requires --judge-id).`,
	Example: `  # Fetch up to 20 pages of judicial positions
  clscraper fetch positions --max-pages 20

  # Continue a financial disclosures pull where the last run stopped
  clscraper fetch financial-disclosures --max-pages 50

  # Pull dockets for one judge into S3
  clscraper fetch search --judge-id 2581 --storage s3

  # Restart an endpoint from page one
  clscraper fetch positions --reset --max-pages 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(args[0])
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVar(&maxPages, "max-pages", 0, "maximum pages to fetch this run (0 = unbounded)")
	fetchCmd.Flags().StringVar(&judgeID, "judge-id", "", "judge author id for per-judge docket search")
	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for local storage")
	fetchCmd.Flags().StringVar(&storageKind, "storage", "", "storage backend (local or s3)")
	fetchCmd.Flags().IntVar(&batchPages, "batch-pages", 0, "pages per output file")
	fetchCmd.Flags().StringVar(&checkpointDir, "checkpoint-dir", "", "directory for checkpoint files")
	fetchCmd.Flags().BoolVar(&resetFirst, "reset", false, "reset the job's checkpoint before fetching")
}

func runFetch(endpoint string) error {
	flags := map[string]interface{}{
		"output":         outputDir,
		"storage":        storageKind,
		"batch-pages":    batchPages,
		"checkpoint-dir": checkpointDir,
		"log-level":      logLevel,
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// A token from config or environment wins; otherwise fall back to the
	// credential store
	if cfg.API.Token == "" {
		if mgr, merr := auth.NewManager(); merr == nil {
			if token, terr := mgr.Retrieve(); terr == nil {
				cfg.API.Token = token
			}
		}
	}
	if cfg.API.Token == "" {
		return fmt.Errorf("no API token configured: run 'clscraper auth login' or set CLSCRAPER_API_TOKEN")
	}

	job, err := buildJob(cfg, endpoint)
	if err != nil {
		return err
	}

	log, err := logger.NewJobLogger(&cfg.Logging, job.Key())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	sink, err := storage.NewSink(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	if resetFirst {
		if err := resetCheckpoint(cfg, job, log); err != nil {
			return err
		}
	}

	client := courtlistener.NewClient(&cfg.API, log)
	limiter := ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerDay, 24*time.Hour)
	runner := scraper.NewRunner(cfg, client, sink, limiter, log)

	ctx, stop := signal.NotifyContext(cmdContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := runner.Run(ctx, job, maxPages)

	fmt.Printf("\nState:           %s\n", result.FinalState)
	fmt.Printf("Pages fetched:   %d\n", result.PagesFetched)
	fmt.Printf("Records written: %d\n", result.RecordsWritten)
	if result.RecordsSkipped > 0 {
		fmt.Printf("Records skipped: %d\n", result.RecordsSkipped)
	}
	if result.TotalRecords > 0 {
		fmt.Printf("API total count: %d\n", result.TotalRecords)
	}

	if runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	return nil
}

// buildJob validates the endpoint selection and constructs the job
func buildJob(cfg *config.Config, endpoint string) (scraper.Job, error) {
	switch endpoint {
	case courtlistener.EndpointPositions,
		courtlistener.EndpointEducation,
		courtlistener.EndpointDisclosures:
		if judgeID != "" {
			return scraper.Job{}, fmt.Errorf("--judge-id is only valid with the search endpoint")
		}
		return scraper.NewEndpointJob(cfg.API.BaseURL, endpoint), nil
	case courtlistener.EndpointSearch:
		if judgeID == "" {
			return scraper.Job{}, fmt.Errorf("the search endpoint requires --judge-id")
		}
		return scraper.NewJudgeDocketJob(cfg.API.BaseURL, judgeID), nil
	default:
		return scraper.Job{}, fmt.Errorf("unknown endpoint %q", endpoint)
	}
}

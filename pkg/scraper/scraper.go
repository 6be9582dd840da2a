package scraper

import (
	"context"

	"github.com/google/uuid"

	"clscraper/pkg/checkpoint"
	"clscraper/pkg/config"
	"clscraper/pkg/courtlistener"
	"clscraper/pkg/logger"
	"clscraper/pkg/ratelimit"
	"clscraper/pkg/retry"
	"clscraper/pkg/storage"
	"clscraper/pkg/transform"
)

// Runner executes fetch loops against a configured API, sink and
// checkpoint directory. One Runner may serve many jobs, but at most one
// run per job key may be active at a time: concurrent runs of the same
// job would race on its checkpoint.
type Runner struct {
	client  PageFetcher
	sink    storage.Sink
	limiter ratelimit.Limiter
	cfg     *config.Config
	logger  logger.Logger
}

// NewRunner creates a Runner with injected collaborators
func NewRunner(cfg *config.Config, client PageFetcher, sink storage.Sink, limiter ratelimit.Limiter, log logger.Logger) *Runner {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Runner{
		client:  client,
		sink:    sink,
		limiter: limiter,
		cfg:     cfg,
		logger:  log,
	}
}

// Run fetches up to maxPages new pages for the job, resuming from its
// checkpoint. maxPages <= 0 means unbounded. The returned JobResult is
// never nil; on failure its Err and the returned error carry the cause.
func (r *Runner) Run(ctx context.Context, job Job, maxPages int) (*JobResult, error) {
	result := &JobResult{FinalState: StateNotStarted}

	log := r.logger.WithFields(map[string]interface{}{
		"run_id":   uuid.New().String(),
		"endpoint": job.Endpoint,
		"sub_key":  job.SubKey,
	})

	spec, err := transform.Lookup(job.Endpoint)
	if err != nil {
		return r.fail(result, log, err)
	}

	cpMgr, err := checkpoint.NewManager(r.cfg.Checkpoint.Dir, job.Endpoint, job.SubKey, log)
	if err != nil {
		return r.fail(result, log, err)
	}

	cp, err := cpMgr.Read()
	if err != nil {
		return r.fail(result, log, err)
	}

	url := cp.LastURL
	if url == "" {
		if cp.PagesFetched > 0 {
			// Pagination was exhausted on a previous run; nothing new to fetch
			log.InfoWithFields("job already complete", map[string]interface{}{
				"pages_fetched": cp.PagesFetched,
			})
			result.FinalState = StateComplete
			return result, nil
		}
		url = job.StartURL
	}

	log.InfoWithFields("starting fetch", map[string]interface{}{
		"resume_url":    url,
		"pages_fetched": cp.PagesFetched,
		"max_pages":     maxPages,
	})
	result.FinalState = StateFetching

	var (
		rows         [][]string
		pendingPages int
		pagesThisRun int
		label        string
	)

	// flush writes buffered pages through the sink and advances the
	// checkpoint by the flushed page count, recording next as the resume
	// URL. Storage write and checkpoint advance never observe
	// cancellation; the loop only stops between iterations.
	flush := func(next string) error {
		if pendingPages == 0 {
			return nil
		}
		hintLabel := label
		if job.SubKey != "" && hintLabel == "" {
			hintLabel = "name_not_found"
		}
		hint := storage.NamingHint{
			Endpoint:  job.Endpoint,
			SubKey:    job.SubKey,
			Label:     hintLabel,
			StartPage: cp.PagesFetched + 1,
			EndPage:   cp.PagesFetched + pendingPages,
		}
		batch := &storage.Batch{Columns: spec.Columns(), Rows: rows}

		if _, err := r.sink.Write(context.WithoutCancel(ctx), batch, hint); err != nil {
			return err
		}
		if err := cpMgr.Advance(cp, next, pendingPages); err != nil {
			return err
		}

		result.PagesFetched += pendingPages
		result.RecordsWritten += len(rows)
		rows = nil
		pendingPages = 0
		return nil
	}

	for {
		// Stop signals are honored only between page iterations so the
		// checkpoint invariant holds on interruption
		if err := ctx.Err(); err != nil {
			if ferr := flush(url); ferr != nil {
				log.WithError(ferr).Error("failed to flush pending pages on cancellation")
			}
			return r.fail(result, log, err)
		}

		if maxPages > 0 && pagesThisRun >= maxPages {
			if err := flush(url); err != nil {
				return r.fail(result, log, err)
			}
			log.InfoWithFields("page limit reached", map[string]interface{}{
				"pages_fetched": result.PagesFetched,
				"next_url":      url,
			})
			result.FinalState = StatePageLimit
			return result, nil
		}

		if err := r.limiter.Wait(ctx); err != nil {
			if ferr := flush(url); ferr != nil {
				log.WithError(ferr).Error("failed to flush pending pages on cancellation")
			}
			return r.fail(result, log, err)
		}

		fetchURL := url
		page, err := retry.DoWithResult(func() (*courtlistener.Page, error) {
			return r.client.GetPage(ctx, fetchURL)
		}, r.retryConfig(ctx, log))
		if err != nil {
			// Pages already buffered were fetched successfully; persist
			// them so only the failing page is refetched next run
			if ferr := flush(url); ferr != nil {
				log.WithError(ferr).Error("failed to flush pending pages after fetch error")
			}
			return r.fail(result, log, err)
		}

		pagesThisRun++

		if pagesThisRun == 1 && page.Count > 0 {
			result.TotalRecords = page.Count
			log.InfoWithFields("endpoint record count", map[string]interface{}{
				"total_records": page.Count,
			})
		}

		for _, raw := range page.Results {
			recs, nerr := spec.Normalize(raw)
			if nerr != nil {
				result.RecordsSkipped++
				log.WarnWithFields("record skipped", map[string]interface{}{
					"page":  cp.PagesFetched + pendingPages + 1,
					"error": nerr.Error(),
				})
				continue
			}
			for _, rec := range recs {
				rows = append(rows, rec)
			}
		}

		if job.SubKey != "" && label == "" {
			if name := transform.ExtractJudgeName(page.Results); name != "name_not_found" {
				label = name
			}
		}

		pendingPages++

		if pendingPages >= r.cfg.Fetch.BatchPages || page.Exhausted() {
			if err := flush(page.Next); err != nil {
				return r.fail(result, log, err)
			}
		}

		if page.Exhausted() {
			log.InfoWithFields("pagination exhausted", map[string]interface{}{
				"pages_fetched":   result.PagesFetched,
				"records_written": result.RecordsWritten,
				"records_skipped": result.RecordsSkipped,
			})
			result.FinalState = StateComplete
			return result, nil
		}

		url = page.Next
	}
}

// retryConfig builds the per-request retry policy from configuration
func (r *Runner) retryConfig(ctx context.Context, log logger.Logger) *retry.Config {
	return &retry.Config{
		MaxAttempts: r.cfg.RateLimit.MaxRetries,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    r.cfg.RateLimit.RetryBaseDelay,
			MaxDelay:     r.cfg.RateLimit.RetryMaxDelay,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		RetryIf: retry.DefaultRetryIf,
		Context: ctx,
		Logger:  log,
	}
}

func (r *Runner) fail(result *JobResult, log logger.Logger, err error) (*JobResult, error) {
	result.FinalState = StateFailed
	result.Err = err
	log.ErrorWithFields("run failed", map[string]interface{}{
		"error":           err.Error(),
		"pages_fetched":   result.PagesFetched,
		"records_written": result.RecordsWritten,
	})
	return result, err
}

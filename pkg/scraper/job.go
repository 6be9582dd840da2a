package scraper

import (
	"clscraper/pkg/checkpoint"
	"clscraper/pkg/courtlistener"
)

// Job identifies one checkpointable scraping task
type Job struct {
	// Endpoint is the API endpoint identifier, e.g. "positions"
	Endpoint string
	// SubKey scopes the job below the endpoint, e.g. a judge id
	SubKey string
	// StartURL is the page-one URL used when no checkpoint exists
	StartURL string
}

// Key returns the job's stable identifier used for checkpoint and log naming
func (j Job) Key() string {
	return checkpoint.FileKey(j.Endpoint, j.SubKey)
}

// NewEndpointJob builds a job for a plain list endpoint
func NewEndpointJob(baseURL, endpoint string) Job {
	return Job{
		Endpoint: endpoint,
		StartURL: courtlistener.FirstPageURL(baseURL, endpoint),
	}
}

// NewJudgeDocketJob builds a per-judge docket search job, sub-keyed by
// the judge's author id
func NewJudgeDocketJob(baseURL, authorID string) Job {
	return Job{
		Endpoint: courtlistener.EndpointSearch,
		SubKey:   authorID,
		StartURL: courtlistener.SearchURL(baseURL, authorID),
	}
}

// State describes where a job run ended up
type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateFetching   State = "FETCHING"
	StateComplete   State = "COMPLETE"
	StateFailed     State = "FAILED"
	StatePageLimit  State = "PAGE_LIMIT_REACHED"
)

// JobResult summarizes one run of a job
type JobResult struct {
	// PagesFetched counts pages persisted by this run only; the
	// checkpoint carries the cumulative count for the job.
	PagesFetched int
	// RecordsWritten counts normalized rows written to the sink
	RecordsWritten int
	// RecordsSkipped counts malformed records dropped during normalization
	RecordsSkipped int
	// TotalRecords is the endpoint's total result count as reported by
	// the first page fetched this run; zero when the API omits it
	TotalRecords int
	// FinalState is COMPLETE, FAILED or PAGE_LIMIT_REACHED
	FinalState State
	// Err holds the failure when FinalState is FAILED
	Err error
}

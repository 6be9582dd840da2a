// Package scraper drives the paginated fetch loop for one job.
//
// A job names an API endpoint, optionally scoped to a sub-key such as a
// judge id. Run resumes from the job's checkpoint, fetches pages
// sequentially, normalizes each page through the endpoint's
// specialization, writes batches through the storage sink, and advances
// the checkpoint only after a write is confirmed. The loop is strictly
// sequential: the next-page URL of each response is the only way to
// reach the following page, so requests cannot be reordered or
// parallelized within a job. Distinct jobs may run concurrently as long
// as no two runs share a job key.
package scraper

// Package checkpoint provides durable per-job fetch progress.
//
// Each scraping job, identified by an endpoint and an optional sub-key
// (for example a judge id), owns one checkpoint file recording the last
// successfully persisted page URL and a page counter. The file is
// written atomically (temp file, fsync, rename) before the fetch loop
// moves on, so an interrupted run loses at most the in-flight page.
//
// Checkpoints are never deleted automatically; an operator resets a job
// explicitly to refetch from page one.
package checkpoint

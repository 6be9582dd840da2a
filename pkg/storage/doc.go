// Package storage persists record batches as tabular files.
//
// A Sink writes one CSV file per batch, named by the page range the
// batch covers so external merge tooling can reconstruct the dataset by
// concatenating files in page order. Two sinks exist: LocalSink writes
// under a directory on the local filesystem, S3Sink puts objects into an
// S3-compatible bucket. Writes are idempotent for a given page range;
// re-running the same pages overwrites the same file byte for byte.
package storage

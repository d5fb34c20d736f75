// Package scrape orchestrates the collection pipeline: one job per
// venue (fetch, parse, normalize, validate, sort), a bounded worker pool
// running the jobs, and the merge of all venue results into the unified
// dataset.
//
// Failure isolation is the central contract here. A job converts every
// failure into an error VenueResult at its own boundary, and the
// orchestrator never aborts remaining jobs because one failed. A run
// always ends with a dataset, even when every venue errored.
package scrape

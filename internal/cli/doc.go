// Package cli implements the command-line interface for concert-scraper.
//
// The cli package provides the Cobra-based CLI with the scrape, serve and
// summary subcommands. It coordinates the config, scrape, output, storage
// and api packages to fetch venue listings, persist run snapshots and
// serve the resulting dataset.
package cli

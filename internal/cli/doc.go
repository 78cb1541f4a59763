// Package cli implements the command-line interface for band-recaps.
//
// The cli package provides the Cobra-based CLI: collecting season scores from
// the orgscores API, loading recap pages into tables, exporting them, and
// tracking which rounds have been scraped across runs. It coordinates the
// config, orgscores, recap, export, storage and notifier packages.
package cli

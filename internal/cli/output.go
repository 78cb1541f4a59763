package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pfrederiksen/band-recaps/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OutputFormat specifies the summary output format
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// ScrapedRound is a round whose recap was loaded and exported.
type ScrapedRound struct {
	GUID    string `json:"guid"`
	Records int    `json:"records"`
	File    string `json:"file"`
}

// FailedRound is a round whose recap could not be loaded.
type FailedRound struct {
	GUID  string `json:"guid"`
	Error string `json:"error"`
}

// RunSummary describes one run of the scrape pipeline.
type RunSummary struct {
	CheckedAt  time.Time      `json:"checked_at"`
	Seasons    []string       `json:"seasons"`
	ScoreRows  int            `json:"score_rows"`
	ScoresFile string         `json:"scores_file,omitempty"`
	Rounds     int            `json:"rounds"`
	NewRounds  []string       `json:"new_rounds"`
	Scraped    []ScrapedRound `json:"scraped"`
	Failed     []FailedRound  `json:"failed,omitempty"`
	Notified   int            `json:"notified"`
}

// WriteOutput writes the summary in the specified format
func WriteOutput(w io.Writer, summary *RunSummary, format OutputFormat, verbose bool) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, summary)
	case OutputText:
		return writeText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, summary *RunSummary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, summary *RunSummary, verbose bool) error {
	fmt.Fprintf(w, "Checked %d round(s) across %d season(s)\n", summary.Rounds, len(summary.Seasons))
	if verbose {
		for _, s := range summary.Seasons {
			fmt.Fprintf(w, "  Season: %s\n", s)
		}
		if summary.ScoresFile != "" {
			fmt.Fprintf(w, "  Scores: %d rows in %s\n", summary.ScoreRows, summary.ScoresFile)
		}
	}

	if len(summary.NewRounds) == 0 {
		fmt.Fprintln(w, "No new rounds found.")
		return nil
	}

	fmt.Fprintf(w, "\nNew rounds (%d):\n", len(summary.NewRounds))
	for _, r := range summary.Scraped {
		fmt.Fprintf(w, "  SCRAPED: %s (%d records)\n", r.GUID, r.Records)
		if verbose {
			fmt.Fprintf(w, "       File: %s\n", r.File)
		}
	}
	for _, r := range summary.Failed {
		fmt.Fprintf(w, "  FAILED: %s\n", r.GUID)
		if verbose {
			fmt.Fprintf(w, "       Error: %s\n", r.Error)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d scraped, %d failed", len(summary.Scraped), len(summary.Failed))
	if summary.Notified > 0 {
		fmt.Fprintf(w, ", %d announced", summary.Notified)
	}
	fmt.Fprintln(w)
	return nil
}

// writeMetrics prints counters and timings in name order.
func writeMetrics(w io.Writer, snap logger.Snapshot) {
	fmt.Fprintln(w, "Metrics:")
	for _, name := range slices.Sorted(maps.Keys(snap.Counters)) {
		fmt.Fprintf(w, "  %s: %d\n", name, snap.Counters[name])
	}
	for _, name := range slices.Sorted(maps.Keys(snap.Timings)) {
		t := snap.Timings[name]
		fmt.Fprintf(w, "  %s: count=%d avg=%s max=%s\n", name, t.Count, t.Average, t.Max)
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/logger"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
)

func TestWriteOutput(t *testing.T) {
	summary := &RunSummary{
		CheckedAt: time.Date(2025, 10, 25, 22, 0, 0, 0, time.UTC),
		Seasons:   []string{"UMEA 2025"},
		Rounds:    3,
		NewRounds: []string{"r1", "r2"},
		Scraped:   []ScrapedRound{{GUID: "r1", Records: 12, File: "out/recap_r1.csv"}},
		Failed:    []FailedRound{{GUID: "r2", Error: "unexpected status code: 404"}},
	}

	tests := []struct {
		name     string
		format   OutputFormat
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "text",
			format:   OutputText,
			contains: []string{"Checked 3 round(s) across 1 season(s)", "SCRAPED: r1 (12 records)", "FAILED: r2", "Total: 1 scraped, 1 failed"},
			excludes: []string{"File:", "Error:"},
		},
		{
			name:     "verbose text",
			format:   OutputText,
			verbose:  true,
			contains: []string{"Season: UMEA 2025", "File: out/recap_r1.csv", "Error: unexpected status code: 404"},
		},
		{
			name:     "json",
			format:   OutputJSON,
			contains: []string{`"new_rounds": [`, `"guid": "r1"`, `"records": 12`, `"checked_at": "2025-10-25T22:00:00Z"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, summary, tt.format, tt.verbose); err != nil {
				t.Fatalf("WriteOutput failed: %v", err)
			}
			got := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, got)
				}
			}
		})
	}

	if err := WriteOutput(&bytes.Buffer{}, summary, "xml", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteOutput_NoNewRounds(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &RunSummary{Rounds: 4}, OutputText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No new rounds found.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestWriteMetrics(t *testing.T) {
	var buf bytes.Buffer
	writeMetrics(&buf, logger.Snapshot{
		Counters: map[string]int64{"recaps.loaded": 2, "orgscores.requests": 3},
		Timings:  map[string]logger.TimingStats{"recap.fetch": {Count: 2, Average: "10ms", Max: "12ms"}},
	})

	got := buf.String()
	if strings.Index(got, "orgscores.requests") > strings.Index(got, "recaps.loaded") {
		t.Errorf("counters should be sorted by name:\n%s", got)
	}
	if !strings.Contains(got, "recap.fetch: count=2 avg=10ms max=12ms") {
		t.Errorf("timing line missing:\n%s", got)
	}
}

func TestSeasonNames(t *testing.T) {
	got := seasonNames([]orgscores.Season{{Name: "UMEA 2025"}, {Name: "UMEA 2024"}})
	if len(got) != 2 || got[1] != "UMEA 2024" {
		t.Errorf("seasonNames() = %v", got)
	}
}

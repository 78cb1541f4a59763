package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/export"
	"github.com/pfrederiksen/band-recaps/internal/logger"
	"github.com/pfrederiksen/band-recaps/internal/notifier"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
	"github.com/pfrederiksen/band-recaps/internal/recap"
	"github.com/spf13/cobra"
)

var (
	flagRunOutDir string
	flagOutput    string
	flagSort      string
	flagNotify    bool
	flagDryRun    bool
)

// addRunFlags defines the flags shared by run and watch.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRunOutDir, "out-dir", ".", "Directory for the scores file and round tables")
	cmd.Flags().StringVar(&flagOutput, "output", "text", "Summary output: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Announcement order: date, competition or division")
	cmd.Flags().BoolVar(&flagNotify, "notify", false, "Announce newly scraped rounds")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print announcements instead of posting them")
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect seasons and scrape every round not seen before",
		Long: `Collect the configured seasons, then load and export the recap of every
round that has not been scraped yet. Scraped rounds are remembered in the
data directory so later runs only fetch what is new.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAndReport(cmd.Context(), cmd.OutOrStdout())
		},
	}

	addRunFlags(cmd)

	return cmd
}

func validateRunFlags() (OutputFormat, SortOrder, error) {
	output := OutputFormat(flagOutput)
	if output != OutputText && output != OutputJSON {
		return "", "", fmt.Errorf("invalid output: %s (must be 'text' or 'json')", flagOutput)
	}
	order := SortOrder(flagSort)
	switch order {
	case SortByDate, SortByCompetition, SortByDivision:
	default:
		return "", "", fmt.Errorf("invalid sort: %s (must be 'date', 'competition' or 'division')", flagSort)
	}
	return output, order, nil
}

// runAndReport runs the pipeline once and writes its summary. A run with
// failed rounds still reports, then returns an error.
func (a *app) runAndReport(ctx context.Context, out io.Writer) error {
	output, order, err := validateRunFlags()
	if err != nil {
		return err
	}

	summary, err := a.runOnce(ctx, order)
	if err != nil {
		return err
	}

	if err := WriteOutput(out, summary, output, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d of %d new rounds failed", len(summary.Failed), len(summary.NewRounds))
	}
	return nil
}

func (a *app) runOnce(ctx context.Context, order SortOrder) (*RunSummary, error) {
	store, err := a.store()
	if err != nil {
		return nil, err
	}

	state, err := store.LoadState()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	collection, err := a.client().Collect(ctx, a.cfg.Seasons)
	if err != nil {
		return nil, fmt.Errorf("collecting seasons: %w", err)
	}

	summary := &RunSummary{
		CheckedAt: time.Now().UTC(),
		Seasons:   seasonNames(a.cfg.Seasons),
		ScoreRows: len(collection.Rows),
		Rounds:    len(collection.RoundGUIDs),
		Scraped:   []ScrapedRound{},
	}

	if len(collection.Rows) > 0 {
		summary.ScoresFile, err = a.writeScores(flagRunOutDir, collection.Rows)
		if err != nil {
			return nil, err
		}
	}

	state.Observe(collection.RoundGUIDs, summary.CheckedAt)
	summary.NewRounds = state.NewRounds(collection.RoundGUIDs)

	logger.Info("Collected seasons", logger.Fields{
		"rows":       len(collection.Rows),
		"rounds":     len(collection.RoundGUIDs),
		"new_rounds": len(summary.NewRounds),
	})

	loader := a.loader(store)
	format := a.cfg.ExportFormat()
	var scraped []string

	for _, guid := range summary.NewRounds {
		if ctx.Err() != nil {
			break
		}

		url := collection.RecapURL(guid)
		if url == "" {
			url = recap.URLForRound(guid)
		}

		table, err := loader.LoadRecap(ctx, url, nil)
		if err != nil {
			logger.Error("Failed to load recap", logger.Fields{"round_guid": guid, "url": url}, err)
			summary.Failed = append(summary.Failed, FailedRound{GUID: guid, Error: err.Error()})
			continue
		}

		path := roundPath(flagRunOutDir, guid, format)
		if err := export.WriteFile(path, format, export.FromTable(table)); err != nil {
			return nil, fmt.Errorf("exporting round %s: %w", guid, err)
		}

		state.MarkScraped(guid, time.Now())
		scraped = append(scraped, guid)
		summary.Scraped = append(summary.Scraped, ScrapedRound{GUID: guid, Records: table.Len(), File: path})
	}

	if err := store.SaveState(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.cfg.Notify.Enabled && len(scraped) > 0 {
		results := orgscores.Filter(orgscores.Summarize(collection.Rows), scraped)
		sortResults(results, order)

		n, err := a.notifier()
		if err != nil {
			return nil, err
		}
		if err := n.Notify(results); err != nil {
			return nil, fmt.Errorf("notifying: %w", err)
		}
		summary.Notified = len(results)
	}

	return summary, nil
}

// roundPath names the export of one round. SQLite rounds share one database.
func roundPath(dir, guid string, format export.Format) string {
	if format == export.FormatSQLite {
		return filepath.Join(dir, "recaps.db")
	}
	return filepath.Join(dir, fmt.Sprintf("recap_%s.%s", guid, format.Ext()))
}

func (a *app) notifier() (notifier.Notifier, error) {
	if a.cfg.Notify.DryRun {
		return notifier.NewDryRunNotifier(os.Stderr), nil
	}
	n, err := notifier.NewTwitterNotifier()
	if err != nil {
		return nil, fmt.Errorf("initializing Twitter notifier: %w", err)
	}
	return n, nil
}

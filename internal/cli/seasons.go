package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/band-recaps/internal/export"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
	"github.com/spf13/cobra"
)

// GUIDsFile lists the unique round GUIDs of the collected seasons.
const GUIDsFile = "round_guids.csv"

var flagSeasonsOutDir string

func newSeasonsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Collect season scores and round GUIDs from the orgscores API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSeasons(cmd)
		},
	}

	cmd.Flags().StringVar(&flagSeasonsOutDir, "out-dir", ".", "Directory for the scores and GUID files")

	return cmd
}

func (a *app) runSeasons(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	collection, err := a.client().Collect(cmd.Context(), a.cfg.Seasons)
	if err != nil {
		return fmt.Errorf("collecting seasons: %w", err)
	}

	if len(collection.Rows) == 0 {
		fmt.Fprintln(out, "No rows collected, nothing to write.")
		return nil
	}

	scoresPath, err := a.writeScores(flagSeasonsOutDir, collection.Rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d rows to %s\n", len(collection.Rows), scoresPath)

	guidsPath := filepath.Join(flagSeasonsOutDir, GUIDsFile)
	if err := writeGUIDs(guidsPath, collection.RoundGUIDs); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d unique round GUIDs to %s\n", len(collection.RoundGUIDs), guidsPath)

	return nil
}

// writeScores replaces the scores file in dir with rows.
func (a *app) writeScores(dir string, rows []orgscores.ScoreRow) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	format := a.cfg.ExportFormat()
	path := filepath.Join(dir, "scores."+format.Ext())

	// SQLite appends, so start from an empty database
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("removing old scores: %w", err)
	}
	if err := export.WriteFile(path, format, export.FromScores(rows)); err != nil {
		return "", fmt.Errorf("writing scores: %w", err)
	}
	return path, nil
}

func writeGUIDs(path string, guids []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteGUIDs(f, guids); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/band-recaps/internal/config"
	"github.com/pfrederiksen/band-recaps/internal/logger"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
	"github.com/pfrederiksen/band-recaps/internal/recap"
	"github.com/pfrederiksen/band-recaps/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagDataDir  string
	flagLogLevel string
	flagFormat   string
	flagLenient  bool
	flagVerbose  bool
)

// flagBindings maps config keys to the flags that override them.
var flagBindings = map[string]string{
	"data_dir":       "data-dir",
	"log_level":      "log-level",
	"format":         "format",
	"recap.lenient":  "lenient",
	"schedule":       "schedule",
	"notify.enabled": "notify",
	"notify.dry_run": "dry-run",
}

// app carries the loaded configuration to the subcommands.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "band-recaps",
		Short: "Scrape CompetitionSuite marching band recaps",
		Long: `A CLI tool to collect marching band scores from CompetitionSuite.
Reads season results from the orgscores API, loads the full recap page of
every round into a table, and tracks scraped rounds across runs.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.report,
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (YAML, JSON or TOML)")
	pf.StringVar(&flagDataDir, "data-dir", storage.DefaultDataDir, "Data directory for state and the mismatch log")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&flagFormat, "format", "csv", "Export format: csv, json, xlsx or sqlite")
	pf.BoolVar(&flagLenient, "lenient", false, "Keep rows whose length does not match the header")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging and print metrics")

	cmd.AddCommand(
		newSeasonsCmd(a),
		newRecapCmd(a),
		newRunCmd(a),
		newWatchCmd(a),
	)

	return cmd
}

// setup binds the running command's flags and loads the configuration.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	for key, name := range flagBindings {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadFrom(a.v, flagConfig)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("Configuration loaded", logger.Fields{
		"data_dir": cfg.DataDir,
		"format":   cfg.Format,
		"seasons":  len(cfg.Seasons),
		"lenient":  cfg.Recap.Lenient,
	})
	return nil
}

// report prints the metrics snapshot in verbose mode.
func (a *app) report(cmd *cobra.Command, args []string) {
	if flagVerbose {
		writeMetrics(cmd.ErrOrStderr(), logger.MetricsSnapshot())
	}
}

func (a *app) store() (*storage.Storage, error) {
	store, err := storage.New(a.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

func (a *app) loader(rec recap.MismatchRecorder) *recap.Loader {
	return recap.NewLoader(a.cfg.NewScraper(), a.cfg.RecapOptions(rec))
}

func (a *app) client() *orgscores.Client {
	return orgscores.NewClient(a.cfg.NewScraper(), a.cfg.OrgscoresConfig())
}

func seasonNames(seasons []orgscores.Season) []string {
	names := make([]string, len(seasons))
	for i, s := range seasons {
		names[i] = s.Name
	}
	return names
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}

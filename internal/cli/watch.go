package cli

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/logger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var (
	flagSchedule string
	flagNow      bool
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repeat run on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd)
		},
	}

	addRunFlags(cmd)
	cmd.Flags().StringVar(&flagSchedule, "schedule", "0 6 * * *", "Cron schedule (minute hour day month weekday)")
	cmd.Flags().BoolVar(&flagNow, "now", false, "Also run once immediately")

	return cmd
}

func (a *app) runWatch(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	spec := a.cfg.Schedule

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	if _, _, err := validateRunFlags(); err != nil {
		return err
	}

	job := func() {
		if err := a.runAndReport(ctx, out); err != nil {
			logger.Error("Scheduled run failed", logger.Fields{"schedule": spec}, err)
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("scheduling run: %w", err)
	}

	if flagNow {
		job()
	}

	c.Start()
	logger.Info("Scheduler started", logger.Fields{
		"schedule": spec,
		"next_run": schedule.Next(time.Now()).Format(time.RFC3339),
	})

	// Wait for shutdown signal
	<-ctx.Done()

	logger.Info("Shutting down...", nil)
	<-c.Stop().Done()
	return nil
}

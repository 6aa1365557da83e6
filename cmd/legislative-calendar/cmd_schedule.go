package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beekeepergroup/legislative-calendar/internal/app"
	"github.com/beekeepergroup/legislative-calendar/internal/publish"
	"github.com/beekeepergroup/legislative-calendar/internal/scheduler"
)

var cronSpec string

// scheduleCmd runs generate and publish on a cron schedule
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run generate and publish on a cron schedule",
	Long: `Runs the generate-then-publish pipeline on a cron expression
(default @weekly), replacing a hosted CI cron job. Blocks until
interrupted.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&cronSpec, "cron", scheduler.DefaultSpec, "Cron expression for regeneration runs")
	scheduleCmd.Flags().StringVar(&publishWorkDir, "work-dir", ".publish", "Local checkout directory")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	job := func(ctx context.Context) error {
		cfg, err := app.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if _, err := app.NewGenerator(cfg, outputDir, app.Formats{}, logger).Run(); err != nil {
			return err
		}
		return publish.New(cfg.Publish, publishWorkDir, logger).Sync(ctx, outputDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return scheduler.New(cronSpec, job, logger).Run(ctx)
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beekeepergroup/legislative-calendar/internal/app"
	"github.com/beekeepergroup/legislative-calendar/internal/watch"
)

// watchCmd regenerates calendars whenever the session config changes
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate calendars whenever the session config changes",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Fail fast on a broken config before entering the watch loop
	if _, err := app.LoadConfig(configPath); err != nil {
		return err
	}

	regenerate := func() {
		cfg, err := app.LoadConfig(configPath)
		if err != nil {
			logger.Error("config reload failed", zap.Error(err))
			return
		}
		if _, err := app.NewGenerator(cfg, outputDir, app.Formats{}, logger).Run(); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
		}
	}

	cw, err := watch.NewConfigWatcher(configPath, regenerate, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cw.Start(ctx); err != nil {
		return err
	}
	defer cw.Stop()

	// Generate once up front so the output dir is current
	regenerate()

	<-ctx.Done()
	return nil
}

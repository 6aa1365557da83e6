package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beekeepergroup/legislative-calendar/internal/app"
	"github.com/beekeepergroup/legislative-calendar/internal/publish"
)

var (
	remoteOverride string
	branchOverride string
	publishWorkDir string
)

// publishCmd pushes the generated calendars to the public repository
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Push generated calendars to the public git repository",
	Long: `Copies the generated calendar files into a local checkout of the
public repository, commits and pushes. File paths never change across
syncs, so the host's raw-file URLs stay stable for subscribers.

Push credentials come from $LEGISCAL_TOKEN, the auth file written by
set-token (HTTPS remotes), or an SSH key (SSH remotes).`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&remoteOverride, "remote", "", "Override the remote URL from the config")
	publishCmd.Flags().StringVar(&branchOverride, "branch", "", "Override the branch from the config")
	publishCmd.Flags().StringVar(&publishWorkDir, "work-dir", ".publish", "Local checkout directory")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	pubCfg := cfg.Publish
	if remoteOverride != "" {
		pubCfg.Remote = remoteOverride
	}
	if branchOverride != "" {
		pubCfg.Branch = branchOverride
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return publish.New(pubCfg, publishWorkDir, logger).Sync(ctx, outputDir)
}

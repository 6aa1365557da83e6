package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beekeepergroup/legislative-calendar/internal/app"
	"github.com/beekeepergroup/legislative-calendar/internal/publish"
)

var verifyBaseURL string

// verifyCmd checks that every published calendar URL still resolves
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every published calendar URL still resolves",
	Long: `Fetches every filename from the local manifest under the public base
URL and checks for HTTP 200 with an iCalendar payload. This is the
subscriber's view: any failure means previously distributed
subscription URLs are broken.

Example:
  legislative-calendar verify --base-url https://raw.githubusercontent.com/beekeepergroup/legislative-calendars/main`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyBaseURL, "base-url", "", "Public base URL the calendars are served under")
	verifyCmd.MarkFlagRequired("base-url")
}

func runVerify(cmd *cobra.Command, args []string) error {
	manifest, err := app.LoadManifest(outputDir)
	if err != nil {
		return err
	}
	if manifest == nil {
		return fmt.Errorf("no manifest in %s; run generate first", outputDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = publish.VerifyURLs(ctx, nil, verifyBaseURL, manifest.Names(), logger)
	return err
}

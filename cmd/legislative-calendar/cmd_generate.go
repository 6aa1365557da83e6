package main

import (
	"github.com/spf13/cobra"

	"github.com/beekeepergroup/legislative-calendar/internal/app"
)

var (
	withCSV  bool
	withJSON bool
)

// generateCmd regenerates the full calendar file set
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate all calendar files from the session config",
	Long: `Reads the session config and writes the full calendar set into the
output directory: one ICS file per state with a session this year, a
combined federal calendar, four regional calendars and an everything
calendar, plus a manifest recording every published filename.

Regeneration refuses to drop a previously published filename, because
subscribers reference calendars by fixed URL.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&withCSV, "csv", false, "Also write CSV exports")
	generateCmd.Flags().BoolVar(&withJSON, "json", false, "Also write JSON exports")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	formats := app.Formats{CSV: withCSV, JSON: withJSON}
	_, err = app.NewGenerator(cfg, outputDir, formats, logger).Run()
	return err
}

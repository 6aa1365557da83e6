package main

import (
	"github.com/spf13/cobra"

	"github.com/beekeepergroup/legislative-calendar/internal/commands"
)

var (
	tokenOverwrite bool
	tokenUnmask    bool
)

// setTokenCmd stores git push credentials for the publisher
var setTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store git push credentials for the publisher",
	Long: `Prompts for a username and access token and writes them to the auth
file (owner-readable only). The publisher uses these credentials when
pushing to HTTPS remotes.

Environment variables:
  LEGISCAL_AUTH_FILE  Path to the auth file (default: gitauth.secret next to the binary)
  LEGISCAL_TOKEN      Token used directly, bypassing the auth file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.SetToken(tokenOverwrite, tokenUnmask)
	},
}

func init() {
	setTokenCmd.Flags().BoolVar(&tokenOverwrite, "overwrite", false, "Overwrite an existing auth file without asking")
	setTokenCmd.Flags().BoolVar(&tokenUnmask, "insecure-unmask-token", false, "Show the token as plain text (INSECURE!)")
}

package cmd

import (
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Authorize and print upcoming events now",
	Long: `Run the calendar lookup immediately without the overlay.

The stored token is used when present; otherwise an authorization URL is
printed and the code is read from the terminal.

Examples:
  take-a-break events
  take-a-break events --client-secrets ~/credentials.json`,
	RunE: runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	return newFlow(cfg).Run(cmd.Context())
}

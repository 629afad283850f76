package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Godley/take-a-break/internal/calendar"
	"github.com/Godley/take-a-break/internal/config"
	"github.com/Godley/take-a-break/internal/nerdfonts"
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List available calendars",
	Long: `List all calendars accessible with your Google account.

Use one of the printed IDs as calendar.calendar_id in config.toml to list
events from a calendar other than your primary one.

Example:
  take-a-break calendars`,
	RunE: runCalendars,
}

func runCalendars(cmd *cobra.Command, args []string) error {
	secrets, err := calendar.LoadClientSecrets(cfg.Auth.ClientSecretsPath)
	if err != nil {
		return err
	}
	authz, err := newAuthorizerFactory(cfg, os.Stdin, os.Stdout)(secrets)
	if err != nil {
		return fmt.Errorf("failed to initialize authorizer: %w", err)
	}
	client, err := authz.Authorize(cmd.Context())
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	calendars, err := calendar.ListCalendars(cmd.Context(), client, "")
	if err != nil {
		return fmt.Errorf("failed to list calendars: %w", err)
	}

	fmt.Println("=== Available Calendars ===")
	for _, cal := range calendars {
		icon := nerdfonts.Calendar
		if cal.Primary {
			icon = nerdfonts.CalendarCheck
		}

		fmt.Printf("%s %s\n", icon, cal.Summary)
		fmt.Printf("  ID: %s\n", cal.ID)
		if cal.Description != "" {
			fmt.Printf("  Description: %s\n", cal.Description)
		}
		fmt.Printf("  Access Role: %s\n", cal.AccessRole)
		fmt.Println()
	}

	fmt.Printf("Total calendars: %d\n", len(calendars))
	if dir, err := config.GetDefaultConfigDir(); err == nil {
		fmt.Printf("\nSet calendar.calendar_id in %s/config.toml to pick one.\n", dir)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(calendarsCmd)
}

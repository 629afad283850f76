package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Godley/take-a-break/internal/calendar"
	"github.com/Godley/take-a-break/internal/nerdfonts"
	"github.com/Godley/take-a-break/internal/security"
)

var (
	revokeFlag bool
	statusOnly bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google Calendar authentication",
	Long: `Authorize read-only Google Calendar access with the OAuth 2.0
authorization code flow.

You'll need an OAuth client of type "Desktop app" downloaded as
credentials.json (or pass --client-secrets).

Examples:
  take-a-break auth             # Authorize and store token.json
  take-a-break auth --status    # Check authentication status
  take-a-break auth --revoke    # Delete the stored token`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().BoolVar(&revokeFlag, "revoke", false, "delete the stored token")
	authCmd.Flags().BoolVar(&statusOnly, "status", false, "check authentication status only")
}

func runAuth(cmd *cobra.Command, args []string) error {
	store, err := newTokenStore(cfg, security.NewSecureLogger(verbose))
	if err != nil {
		return fmt.Errorf("failed to open token store: %w", err)
	}

	if statusOnly {
		printTokenStatus(store.Status(), "")
		return nil
	}

	if revokeFlag {
		fmt.Printf("%s Clearing authentication...\n", nerdfonts.InfoCircle)
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear authentication: %w", err)
		}
		fmt.Printf("%s Authentication cleared successfully\n", nerdfonts.CheckCircle)
		return nil
	}

	if store.Status().Usable() {
		fmt.Printf("%s Already authenticated with Google Calendar\n", nerdfonts.CheckCircle)
		fmt.Println("Use --revoke to re-authenticate or --status to check status")
		return nil
	}

	secrets, err := calendar.LoadClientSecrets(cfg.Auth.ClientSecretsPath)
	if err != nil {
		return err
	}
	authz, err := newAuthorizerFactory(cfg, os.Stdin, os.Stdout)(secrets)
	if err != nil {
		return fmt.Errorf("failed to initialize authorizer: %w", err)
	}

	if _, err := authz.InteractiveAcquire(cmd.Context()); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Printf("%s Authentication successful!\n", nerdfonts.CheckCircle)
	fmt.Println("You can now run 'take-a-break events' to list your upcoming events.")
	return nil
}

func printTokenStatus(status calendar.TokenStatus, hint string) {
	if status.Usable() {
		fmt.Printf("%s Authentication: %s\n", nerdfonts.CheckCircle, status)
		return
	}
	fmt.Printf("%s Authentication: %s%s\n", nerdfonts.ExclamationCircle, status, hint)
}

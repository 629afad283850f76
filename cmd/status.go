package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Godley/take-a-break/internal/calendar"
	"github.com/Godley/take-a-break/internal/config"
	"github.com/Godley/take-a-break/internal/desktop"
	"github.com/Godley/take-a-break/internal/nerdfonts"
	"github.com/Godley/take-a-break/internal/security"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and authentication status",
	Long: `Display the current state of take-a-break:
- Configuration directory and overlay settings
- Client secrets file
- Stored token`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Configuration ===")
	configDir := cfgFile
	if configDir == "" {
		if dir, err := config.GetDefaultConfigDir(); err == nil {
			configDir = dir
		}
	}
	fmt.Printf("Config directory: %s\n", configDir)
	fmt.Printf("Delay: %s\n", cfg.Overlay.Delay)
	fmt.Printf("Elevated opacity: %.0f%%\n", cfg.Overlay.ElevatedOpacity*100)
	fmt.Printf("Content URL: %s\n", cfg.Overlay.ContentURL)
	if desktop.ShouldQuitWhenAllClosed(runtime.GOOS, cfg.Overlay.KeepRunningPlatform) {
		fmt.Println("Closing the overlay quits the app")
	} else {
		fmt.Println("Closing the overlay keeps the tray running")
	}

	fmt.Println("\n=== Client Secrets ===")
	fmt.Printf("File: %s\n", cfg.Auth.ClientSecretsPath)
	if _, err := os.Stat(cfg.Auth.ClientSecretsPath); err != nil {
		fmt.Printf("%s Not found\n", nerdfonts.ExclamationTriangle)
	} else if _, err := calendar.LoadClientSecrets(cfg.Auth.ClientSecretsPath); err != nil {
		fmt.Printf("%s Invalid: %v\n", nerdfonts.ExclamationTriangle, err)
	} else {
		fmt.Printf("%s Valid\n", nerdfonts.CheckCircle)
	}

	fmt.Println("\n=== Token ===")
	fmt.Printf("File: %s\n", cfg.Auth.TokenPath)
	fmt.Printf("Encrypted: %t\n", cfg.Auth.EncryptToken)
	store, err := newTokenStore(cfg, security.NewSecureLogger(verbose))
	if err != nil {
		fmt.Printf("%s Token store unavailable: %v\n", nerdfonts.ExclamationTriangle, err)
		return nil
	}
	printTokenStatus(store.Status(), " (run 'take-a-break auth')")

	return nil
}

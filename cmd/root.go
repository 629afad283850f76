package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Godley/take-a-break/internal/config"
	"github.com/Godley/take-a-break/internal/logger"
)

var (
	verbose           bool
	cfgFile           string
	clientSecretsPath string
	tokenPath         string
	delay             time.Duration
	cfg               *config.Config

	// Version information
	version    string
	commitHash string
	buildTime  string
)

var rootCmd = &cobra.Command{
	Use:   "take-a-break",
	Short: "Dim the screen after a while and show what's next in your calendar",
	Long: `take-a-break puts a click-through, always-on-top overlay over the primary
display and lets you pick a dimming level from the system tray.

After the configured delay the overlay dims to 90% and the Google Calendar
lookup starts: the stored token is used when present, otherwise the terminal
prints an authorization URL and waits for the code. The next upcoming events
are then printed to the terminal.`,
	RunE: runOverlay,
}

func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, commit, buildTimeStr string) {
	version = v
	commitHash = commit
	buildTime = buildTimeStr

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commitHash, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/take-a-break)")
	rootCmd.PersistentFlags().StringVar(&clientSecretsPath, "client-secrets", "", "path to the OAuth client secrets JSON file (default: credentials.json)")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token", "", "path to the stored token (default: token.json)")
	rootCmd.PersistentFlags().DurationVar(&delay, "delay", 0, "time before the overlay dims and the calendar lookup starts (default: 60m)")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() {
	logger.Init(verbose)

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	applyFlagOverrides(rootCmd, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("configuration loaded",
		"client_secrets", cfg.Auth.ClientSecretsPath,
		"token", cfg.Auth.TokenPath,
		"delay", cfg.Overlay.Delay)
}

// applyFlagOverrides layers explicitly set flags over the file and
// environment configuration.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.PersistentFlags()
	if flags.Changed("client-secrets") {
		c.Auth.ClientSecretsPath = clientSecretsPath
	}
	if flags.Changed("token") {
		c.Auth.TokenPath = tokenPath
	}
	if flags.Changed("delay") {
		c.Overlay.Delay = delay
	}
}

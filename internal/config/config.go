package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName   = "take-a-break"
	envPrefix = "TAKE_A_BREAK"
)

type Config struct {
	Overlay  OverlayConfig  `mapstructure:"overlay"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

type OverlayConfig struct {
	Delay               time.Duration `mapstructure:"delay"`
	ElevatedOpacity     float64       `mapstructure:"elevated_opacity"`
	ContentURL          string        `mapstructure:"content_url"`
	KeepRunningPlatform string        `mapstructure:"keep_running_platform"`
}

type AuthConfig struct {
	ClientSecretsPath string `mapstructure:"client_secrets_path"`
	TokenPath         string `mapstructure:"token_path"`
	EncryptToken      bool   `mapstructure:"encrypt_token"`
	NotifyPrompt      bool   `mapstructure:"notify_prompt"`
}

type CalendarConfig struct {
	CalendarID string `mapstructure:"calendar_id"`
	MaxResults int64  `mapstructure:"max_results"`
}

var defaultConfig = Config{
	Overlay: OverlayConfig{
		Delay:               60 * time.Minute,
		ElevatedOpacity:     0.90,
		ContentURL:          "http://godley.dev",
		KeepRunningPlatform: "darwin",
	},
	Auth: AuthConfig{
		ClientSecretsPath: "credentials.json",
		TokenPath:         "token.json",
		EncryptToken:      false,
		NotifyPrompt:      true,
	},
	Calendar: CalendarConfig{
		CalendarID: "primary",
		MaxResults: 10,
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaultConfig
	return &c
}

// Load reads config.toml from configPath (or the default config directory and
// the working directory), layering TAKE_A_BREAK_* environment variables on top.
// A missing file is created with the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigName("config")

	if configPath == "" {
		configDir, err := getDefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		configPath = configDir
	}

	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := createDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		// Defaults and env still apply when the new file can't be read back.
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values the overlay and the flow cannot work with.
func (c *Config) Validate() error {
	if c.Overlay.Delay < 0 {
		return fmt.Errorf("overlay.delay must not be negative, got %s", c.Overlay.Delay)
	}
	if c.Overlay.ElevatedOpacity < 0 || c.Overlay.ElevatedOpacity > 1 {
		return fmt.Errorf("overlay.elevated_opacity must be within [0, 1], got %v", c.Overlay.ElevatedOpacity)
	}
	if c.Auth.ClientSecretsPath == "" {
		return fmt.Errorf("auth.client_secrets_path must be set")
	}
	if c.Auth.TokenPath == "" {
		return fmt.Errorf("auth.token_path must be set")
	}
	if c.Calendar.MaxResults <= 0 {
		return fmt.Errorf("calendar.max_results must be positive, got %d", c.Calendar.MaxResults)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Overlay
	v.SetDefault("overlay.delay", defaultConfig.Overlay.Delay)
	v.SetDefault("overlay.elevated_opacity", defaultConfig.Overlay.ElevatedOpacity)
	v.SetDefault("overlay.content_url", defaultConfig.Overlay.ContentURL)
	v.SetDefault("overlay.keep_running_platform", defaultConfig.Overlay.KeepRunningPlatform)

	// Auth
	v.SetDefault("auth.client_secrets_path", defaultConfig.Auth.ClientSecretsPath)
	v.SetDefault("auth.token_path", defaultConfig.Auth.TokenPath)
	v.SetDefault("auth.encrypt_token", defaultConfig.Auth.EncryptToken)
	v.SetDefault("auth.notify_prompt", defaultConfig.Auth.NotifyPrompt)

	// Calendar
	v.SetDefault("calendar.calendar_id", defaultConfig.Calendar.CalendarID)
	v.SetDefault("calendar.max_results", defaultConfig.Calendar.MaxResults)
}

func createDefaultConfig(configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.toml")

	if _, err := os.Stat(configFile); err == nil {
		return nil // Already exists
	}

	configContent := `# take-a-break configuration

[overlay]
delay = "60m"                   # time before the overlay dims and calendar lookup starts
elevated_opacity = 0.90
content_url = "http://godley.dev"
keep_running_platform = "darwin" # platform where closing the overlay keeps the tray alive

[auth]
client_secrets_path = "credentials.json"
token_path = "token.json"
encrypt_token = false  # encrypt token.json at rest
notify_prompt = true   # desktop notification when the terminal waits for a code

[calendar]
calendar_id = "primary"
max_results = 10
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func getDefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func GetDefaultConfigDir() (string, error) {
	return getDefaultConfigDir()
}

package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/subosito/gotenv"

	"github.com/Godley/take-a-break/cmd"
	"github.com/Godley/take-a-break/internal/logger"
)

// Build-time variables injected by ldflags
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func init() {
	// GLFW and the macOS status item must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	// Load .env file if present (current directory or XDG config dir) to allow TAKE_A_BREAK_* overrides
	// Order: project root .env > XDG config dir .env (first one found is loaded)
	tryPaths := []string{".env"}
	if cfgHome, err := os.UserConfigDir(); err == nil {
		tryPaths = append(tryPaths, filepath.Join(cfgHome, "take-a-break", ".env"))
	}
	for _, p := range tryPaths {
		if _, err := os.Stat(p); err == nil {
			if loadErr := gotenv.Load(p); loadErr == nil {
				break
			}
		}
	}

	cmd.SetVersionInfo(Version, CommitHash, BuildTime)

	if err := cmd.Execute(); err != nil {
		logger.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

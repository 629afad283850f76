package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Godley/take-a-break/internal/calendar"
	"github.com/Godley/take-a-break/internal/desktop"
	"github.com/Godley/take-a-break/internal/logger"
)

func runOverlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flow := newFlow(cfg)

	return desktop.Run(ctx, desktop.Options{
		Delay:               cfg.Overlay.Delay,
		ElevatedOpacity:     cfg.Overlay.ElevatedOpacity,
		ContentURL:          cfg.Overlay.ContentURL,
		KeepRunningPlatform: cfg.Overlay.KeepRunningPlatform,
		OnDelay: func() {
			done := flow.Start(ctx)
			go func() {
				if err := <-done; err != nil {
					logger.Debug("calendar flow stopped", "kind", calendar.KindOf(err).String())
					return
				}
				logger.Debug("calendar flow finished")
			}()
		},
	})
}

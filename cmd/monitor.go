package main

import (
	"context"
	"os/signal"
	"scanconsole/internal/config"
	"scanconsole/internal/console"
	"scanconsole/internal/textview"
	"scanconsole/pkg/logger"
	"syscall"

	"github.com/spf13/cobra"
)

func monitorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Follows the protection log and quarantine feeds until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopDiagnostics := setupDiagnostics(ctx, cfg)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.RequestTimeout)
				defer cancel()
				stopDiagnostics(shutdownCtx)
			}()

			// feeds are read only here, mutations go through the quarantine command.
			monitor := console.NewMonitor(newClient(cfg, cfg.Backend.RequestTimeout), denyConfirmer{},
				textview.New(cmd.OutOrStdout()), console.NewMonitorOptions(cfg))

			logger.Info(ctx, "monitor started")
			monitor.Start(ctx)
			<-ctx.Done()
			monitor.Stop()
			logger.Info(ctx, "monitor stopped")

			return nil
		},
	}

	return cmd
}

type denyConfirmer struct{}

func (denyConfirmer) Confirm(context.Context, string) (bool, error) { return false, nil }

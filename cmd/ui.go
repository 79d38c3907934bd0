package main

import (
	"context"
	"fmt"
	"os/signal"
	"scanconsole/internal/config"
	"scanconsole/internal/console"
	"scanconsole/internal/tui"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/logger"
	"syscall"

	"github.com/spf13/cobra"
)

func uiCommand(cfg *config.Config) *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Starts the interactive scanning console",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := domain.ParseMode(tab)
			if err != nil {
				return err
			}

			// the console owns the terminal; logs go to a file.
			logger.Setup(cfg.Environment, cfg.Logging.File)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopDiagnostics := setupDiagnostics(ctx, cfg)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.RequestTimeout)
				defer cancel()
				stopDiagnostics(shutdownCtx)
			}()

			sink := tui.NewSink()
			ctrl := console.NewController(newClient(cfg, cfg.Backend.UploadTimeout), sink, sink, console.NewOptions(cfg))
			defer ctrl.Close()

			if err := tui.Run(ctx, tui.NewApp(ctx, ctrl, start), sink); err != nil {
				return fmt.Errorf("console exited: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", domain.ModeFile.String(), "Initial tab (file, url, history or protect)")

	return cmd
}

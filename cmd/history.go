package main

import (
	"context"
	"fmt"
	"scanconsole/internal/config"
	"scanconsole/internal/textview"

	"github.com/spf13/cobra"
)

func historyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lists previous scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Backend.RequestTimeout)
			defer cancel()

			records, err := newClient(cfg, cfg.Backend.RequestTimeout).History(ctx)
			if err != nil {
				return fmt.Errorf("could not load history: %w", err)
			}
			textview.New(cmd.OutOrStdout()).History(records)

			return nil
		},
	}

	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"scanconsole/internal/config"
	"scanconsole/internal/console"
	"scanconsole/internal/textview"
	"scanconsole/pkg/serrors"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func quarantineCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quarantine",
		Short: "Lists and manages quarantined files",
	}

	cmd.AddCommand(
		quarantineListCommand(cfg),
		quarantineActionCommand(cfg, console.ActionRestore, "Restores a quarantined file"),
		quarantineActionCommand(cfg, console.ActionDelete, "Permanently deletes a quarantined file"),
	)

	return cmd
}

func quarantineListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists quarantined files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Backend.RequestTimeout)
			defer cancel()

			items, err := newClient(cfg, cfg.Backend.RequestTimeout).Quarantine(ctx)
			if err != nil {
				return fmt.Errorf("could not load quarantine: %w", err)
			}
			textview.New(cmd.OutOrStdout()).Quarantine(items)

			return nil
		},
	}
}

func quarantineActionCommand(cfg *config.Config, action console.Action, short string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   string(action) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var confirmer console.Confirmer = formConfirmer{}
			if yes {
				confirmer = acceptConfirmer{}
			}

			view := textview.New(cmd.OutOrStdout())
			monitor := console.NewMonitor(newClient(cfg, cfg.Backend.RequestTimeout), confirmer, view,
				console.NewMonitorOptions(cfg))

			msg, err := monitor.Dispatch(ctx, console.Command{Action: action, ID: args[0]})
			switch {
			case errors.Is(err, serrors.ErrCancelled):
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")

				return nil
			case err != nil:
				return errors.New(serrors.UserMessage(err))
			}
			if msg != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// formConfirmer asks on the terminal.
type formConfirmer struct{}

func (formConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(prompt).Affirmative("Yes").Negative("No").Value(&ok),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}

		return false, err
	}

	return ok, nil
}

type acceptConfirmer struct{}

func (acceptConfirmer) Confirm(context.Context, string) (bool, error) { return true, nil }

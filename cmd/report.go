package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"scanconsole/internal/config"
	"scanconsole/internal/console"
	"scanconsole/internal/textview"
	"scanconsole/pkg/domain"
	"syscall"

	"github.com/spf13/cobra"
)

func reportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Shows or downloads the report of a previous scan",
	}

	cmd.AddCommand(reportShowCommand(cfg), reportPDFCommand(cfg))

	return cmd
}

func reportShowCommand(cfg *config.Config) *cobra.Command {
	var (
		typ  string
		name string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Waits for a report and prints its verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetType := domain.TargetType(typ)
			if targetType != domain.TargetFile && targetType != domain.TargetURL {
				return fmt.Errorf("invalid --type %q, expected file or url", typ)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			view := textview.New(cmd.OutOrStdout())
			view.Loading(console.LabelLoading)

			_, err := waitReport(ctx, newClient(cfg, cfg.Backend.RequestTimeout), console.NewPollerOptions(cfg), view,
				console.Request{JobID: args[0], Type: targetType, Name: name})

			return err
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(domain.TargetFile), "Resource type (file or url)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name recorded with the report")

	return cmd
}

func reportPDFCommand(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Downloads the PDF report of a scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = "report_" + args[0] + ".pdf"
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("could not create output file: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Backend.UploadTimeout)
			defer cancel()

			n, err := newClient(cfg, cfg.Backend.UploadTimeout).DownloadPDF(ctx, args[0], f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(output)

				return fmt.Errorf("could not download report: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", output, n)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default report_<id>.pdf)")

	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"scanconsole/internal/config"
	"scanconsole/internal/console"
	"scanconsole/internal/render"
	"scanconsole/internal/textview"
	"scanconsole/pkg/backend"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/serrors"
	"syscall"

	"github.com/spf13/cobra"
)

// errThreat is returned when --fail-on-threat is set and the verdict is not clean.
var errThreat = errors.New("threat detected")

func scanCommand(cfg *config.Config) *cobra.Command {
	var (
		file         string
		url          string
		quiet        bool
		failOnThreat bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Submits a file or a URL and waits for its verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var target domain.ScanTarget = domain.URLTarget{URL: url}
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("could not open file: %w", err)
				}
				defer f.Close()
				target = domain.FileTarget{Name: filepath.Base(file), Content: f}
			}

			view := textview.New(cmd.OutOrStdout())
			view.Quiet = quiet
			client := newClient(cfg, cfg.Backend.UploadTimeout)

			d, err := runScan(ctx, client, console.NewPollerOptions(cfg), view, target)
			if err != nil {
				return err
			}
			if failOnThreat && d.Badge != render.BadgeSafe {
				return errThreat
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File to upload")
	cmd.Flags().StringVarP(&url, "url", "u", "", "URL to scan")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the verdict")
	cmd.Flags().BoolVar(&failOnThreat, "fail-on-threat", false, "Exit with an error unless the verdict is clean")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsOneRequired("file", "url")

	return cmd
}

// rejection reports a rejected submission by its user-facing reason while
// keeping the kinded cause reachable through errors.Is.
type rejection struct {
	reason string
	err    error
}

func (r rejection) Error() string { return r.reason }
func (r rejection) Unwrap() error { return r.err }

// runScan submits target, waits for a terminal report when the backend tracks
// it, and renders the outcome into view. Rejections and failed reports are
// returned as errors.
func runScan(ctx context.Context,
	client backend.Client,
	options console.PollerOptions,
	view console.View,
	target domain.ScanTarget) (render.Display, error) {
	view.Loading(console.LabelSubmitting)

	switch o := console.NewSubmitter(client).Submit(ctx, target).(type) {
	case domain.Rejected:
		return render.Display{}, rejection{reason: o.Reason, err: o.Err}
	case domain.LocalOnly:
		d := render.Local(o.Verdict)
		view.Result(d)

		return d, nil
	case domain.Tracked:
		label := console.LabelAnalyzing
		if o.Cached {
			label = console.LabelCached
		}
		view.Loading(label)

		return waitReport(ctx, client, options, view, console.Request{JobID: o.JobID, Type: o.Type, Name: o.DisplayName})
	default:
		return render.Display{}, fmt.Errorf("unexpected submission outcome %T", o)
	}
}

// waitReport polls req until it is terminal and renders the result.
func waitReport(ctx context.Context,
	client backend.Client,
	options console.PollerOptions,
	view console.View,
	req console.Request) (render.Display, error) {
	st, err := console.NewPoller(client, options).Wait(ctx, req, view.Notice)
	if err != nil {
		return render.Display{}, err
	}

	switch s := st.(type) {
	case domain.Completed:
		d := render.Cloud(s.Data)
		d.ReportURL = client.ReportPDFURL(req.JobID)
		view.Result(d)

		return d, nil
	case domain.Failed:
		return render.Display{}, serrors.With(serrors.ErrTerminal, "%s", s.Reason)
	default:
		return render.Display{}, fmt.Errorf("unexpected report status %T", s)
	}
}

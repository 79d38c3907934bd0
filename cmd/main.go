// Package main provides the CLI entrypoint for the scanning console.
// It wires subcommands (ui, scan, history, report, monitor, quarantine), loads
// configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"scanconsole/internal/config"
	"scanconsole/internal/diag"
	"scanconsole/pkg/backend/httpapi"
	"scanconsole/pkg/logger"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newClient creates a backend client for the configured base URL. timeout
// bounds every request made with it.
func newClient(cfg *config.Config, timeout time.Duration) *httpapi.Client {
	return httpapi.New(&http.Client{Timeout: timeout}, cfg.BaseURL())
}

// setupDiagnostics starts the metrics server when an address is configured
// and returns a function stopping it.
func setupDiagnostics(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	if cfg.Metrics.Addr == "" {
		return func(context.Context) {}
	}

	server := diag.NewServer(diag.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting metrics server...", zap.String("addr", cfg.Metrics.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start metrics server", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping metrics server...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop metrics server", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "scanconsole",
		Short:         "Submit files and URLs for malware scanning and watch the results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		uiCommand(cfg),
		scanCommand(cfg),
		historyCommand(cfg),
		reportCommand(cfg),
		monitorCommand(cfg),
		quarantineCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1) //nolint: gocritic
	}
}

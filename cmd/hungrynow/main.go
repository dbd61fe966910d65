// Command hungrynow is the HungryNow command-line client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hungrynow/hungrynow/internal/api"
	"github.com/hungrynow/hungrynow/internal/app"
	"github.com/hungrynow/hungrynow/internal/cli"
	"github.com/hungrynow/hungrynow/internal/config"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL string
		profile string
		verbose bool
	)
	flag.StringVar(&baseURL, "api", "", "backend base URL (overrides API_BASE_URL)")
	flag.StringVar(&profile, "profile", "", "session profile (overrides SESSION_PROFILE)")
	flag.BoolVar(&verbose, "v", false, "print every store action")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hungrynow [flags] <command> [subcommand] [flags]")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nRun \"hungrynow help\" for the command list.")
	}
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if baseURL != "" {
		cfg.APIBaseURL = baseURL
	}
	if profile != "" {
		cfg.SessionProfile = profile
	}

	log := logger.NewWithWriter("hungrynow-cli", logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := app.New(ctx, cfg, "hungrynow-cli", log)
	if err != nil {
		log.Error("failed to initialize client", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer closeCancel()
		if err := client.Close(closeCtx); err != nil {
			log.Warn("shutdown error", slog.String("error", err.Error()))
		}
	}()

	if verbose {
		stop := cli.Watch(client.Store, os.Stderr)
		defer stop()
	}

	err = cli.New(client.Store, os.Stdout, os.Stderr).Run(ctx, flag.Args())
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, cli.ErrUsage), errors.Is(err, cli.ErrInvalidInput):
		// Details were already printed.
		return 2
	case api.IsRejected(err):
		// The backend refused the request; retrying as is will not help.
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 3
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
}

// Command apicheck verifies the contract of a running query API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/pokedex/internal/apicheck"
	"github.com/okian/pokedex/pkg/logger"
)

// Default configuration constants.
const (
	defaultBaseURL   = "http://localhost:8000"
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("apicheck", flag.ContinueOnError)
	var (
		baseURL   = fs.String("url", defaultBaseURL, "Base URL of the API")
		workers   = fs.Int("workers", apicheck.DefaultWorkers, "Number of concurrent checkers")
		probes    = fs.Int("probes", apicheck.DefaultMaxProbes, "Maximum number of types and countries probed individually")
		timeout   = fs.Duration("timeout", apicheck.DefaultTimeout, "HTTP request timeout")
		logFormat = fs.String("log-format", "text", "Log format: text or json")
		verbose   = fs.Bool("verbose", false, "Log every passing check")
		help      = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		apicheck.ShowHelp()
		return 0
	}

	if err := logger.Init(logger.WithFormat(*logFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	stats, err := apicheck.Run(ctx, &apicheck.Config{
		BaseURL:   strings.TrimRight(*baseURL, "/"),
		Workers:   *workers,
		Timeout:   *timeout,
		MaxProbes: *probes,
		Verbose:   *verbose,
		Logger:    logger.Named("apicheck"),
	})
	if err != nil {
		os.Stderr.WriteString("api check failed: " + err.Error() + "\n")
		for _, f := range stats.Failures {
			os.Stderr.WriteString("  " + f + "\n")
		}
		return 1
	}
	return 0
}

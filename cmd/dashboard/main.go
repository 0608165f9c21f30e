// Command dashboard serves the Pokédex explorer pages.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/pokedex/internal/adapters/http/api"
	"github.com/okian/pokedex/internal/adapters/http/dashboard"
	app "github.com/okian/pokedex/internal/app"
	"github.com/okian/pokedex/internal/config"
	"github.com/okian/pokedex/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Named("dashboard")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.NewFromConfig(cfg, app.WithLogger(log))
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go app.RunSystemMetrics(ctx, app.SystemMetricsInterval)

	handler, err := newHandler(ctx, cfg, svc, log)
	if err != nil {
		log.Error(ctx, "failed to build dashboard", logger.Error(err))
		return
	}
	if err := app.Serve(ctx, app.NewHTTPServer(cfg.DashboardAddr, handler), log); err != nil {
		log.Error(ctx, "dashboard server failed", logger.Error(err))
		return
	}
}

// newHandler builds the dashboard mux.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) (http.Handler, error) {
	h, err := dashboard.NewHandler(svc,
		dashboard.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		dashboard.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard handler: %w", err)
	}
	mux := http.NewServeMux()
	h.Register(ctx, mux)
	return api.RequestLogger(log)(mux), nil
}

// Command api serves the read-only Pokédex query API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/pokedex/internal/adapters/http/api"
	"github.com/okian/pokedex/internal/adapters/http/swagger"
	app "github.com/okian/pokedex/internal/app"
	"github.com/okian/pokedex/internal/config"
	"github.com/okian/pokedex/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
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

	log := logger.Named("api")
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

	srv := app.NewHTTPServer(cfg.APIAddr, newHandler(ctx, svc, log))
	if err := app.Serve(ctx, srv, log); err != nil {
		log.Error(ctx, "api server failed", logger.Error(err))
		return
	}
}

// newHandler builds the API mux: query routes, stats, metrics and docs.
func newHandler(ctx context.Context, svc *app.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return api.RequestLogger(log)(mux)
}

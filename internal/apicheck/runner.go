package apicheck

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/pokedex/pkg/logger"
)

// Defaults applied to zero Config fields.
const (
	DefaultWorkers   = 4
	DefaultTimeout   = 10 * time.Second
	DefaultMaxProbes = 20
	sampleSize       = 50
)

// Run probes the API at cfg.BaseURL. It returns ErrUnhealthy when /health
// cannot be read and ErrCheckFailed when any contract check fails; stats
// are filled in either way.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	cfg = withDefaults(cfg)
	log := cfg.Logger
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting api check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	var h health
	if _, err := client.GetJSON(ctx, "/health", &h); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if h.Status != "ok" {
		return stats, fmt.Errorf("%w: status %q", ErrUnhealthy, h.Status)
	}
	stats.Rows = h.Rows

	checks, err := plan(ctx, client, cfg, stats)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	runChecks(ctx, client, cfg, checks, stats, log)

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "api check finished",
		logger.Int("rows", stats.Rows),
		logger.Int("checks", stats.Checks),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
	)
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d failed", ErrCheckFailed, stats.Failed, stats.Checks)
	}
	return stats, nil
}

func withDefaults(cfg *Config) *Config {
	out := *cfg
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.MaxProbes <= 0 {
		out.MaxProbes = DefaultMaxProbes
	}
	if out.Logger == nil {
		out.Logger = logger.Nop()
	}
	return &out
}

// plan reads the lookups, verifies them, and derives the remaining checks.
func plan(ctx context.Context, c *HTTPClient, cfg *Config, stats *Stats) ([]check, error) {
	var types, countries []string
	if _, err := c.GetJSON(ctx, "/types", &types); err != nil {
		return nil, err
	}
	if _, err := c.GetJSON(ctx, "/countries", &countries); err != nil {
		return nil, err
	}
	stats.Types, stats.Countries = len(types), len(countries)

	checks := []check{
		{name: "types sorted", run: func(context.Context, *HTTPClient) error { return verifySortedDistinct("types", types) }},
		{name: "countries sorted", run: func(context.Context, *HTTPClient) error { return verifySortedDistinct("countries", countries) }},
		idempotenceCheck("/types"),
		idempotenceCheck("/countries"),
		idempotenceCheck("/pokemon"),
	}

	if stats.Rows == 0 {
		if len(types) > 0 || len(countries) > 0 {
			return nil, fmt.Errorf("empty dataset lists %d types and %d countries", len(types), len(countries))
		}
		return append(checks, emptyDatasetCheck()), nil
	}

	for _, t := range firstN(types, cfg.MaxProbes) {
		checks = append(checks, equalityCheck("tipo", "Tipo", t))
	}
	for _, p := range firstN(countries, cfg.MaxProbes) {
		checks = append(checks, equalityCheck("pais", "Pais", p))
	}
	checks = append(checks, limitCheck(1), limitCheck(min(stats.Rows, sampleSize)))

	raw, err := fetchPokemon(ctx, c, url.Values{"limit": {fmt.Sprint(sampleSize)}})
	if err != nil {
		return nil, err
	}
	sample, err := decodePokemon(raw)
	if err != nil {
		return nil, err
	}
	if lo, hi, ok := sampleBounds(sample); ok {
		checks = append(checks, boundsCheck(lo, hi))
	}
	return checks, nil
}

// runChecks fans checks out to cfg.Workers goroutines.
func runChecks(ctx context.Context, c *HTTPClient, cfg *Config, checks []check, stats *Stats, log logger.Logger) {
	var (
		passed, failed int64
		mu             sync.Mutex
		wg             sync.WaitGroup
	)
	jobs := make(chan check, cfg.Workers*2)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ch := range jobs {
				if err := ch.run(ctx, c); err != nil {
					atomic.AddInt64(&failed, 1)
					mu.Lock()
					stats.Failures = append(stats.Failures, ch.name+": "+err.Error())
					mu.Unlock()
					log.Warn(ctx, "check failed", logger.String("check", ch.name), logger.Error(err))
					continue
				}
				atomic.AddInt64(&passed, 1)
				if cfg.Verbose {
					log.Info(ctx, "check passed", logger.String("check", ch.name))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, ch := range checks {
			select {
			case <-ctx.Done():
				return
			case jobs <- ch:
			}
		}
	}()
	wg.Wait()

	stats.Checks = len(checks)
	stats.Passed = int(atomic.LoadInt64(&passed))
	stats.Failed = int(atomic.LoadInt64(&failed))
	if skipped := stats.Checks - stats.Passed - stats.Failed; skipped > 0 {
		stats.Failed += skipped
		stats.Failures = append(stats.Failures, fmt.Sprintf("%d checks not run: %v", skipped, ctx.Err()))
	}
}

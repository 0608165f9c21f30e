package service

import (
	"context"
	"runtime"
	"time"

	"github.com/okian/pokedex/pkg/metrics"
)

const (
	// SystemMetricsInterval is how often process metrics are refreshed.
	SystemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// RunSystemMetrics refreshes process metrics every interval until ctx is done.
func RunSystemMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	UpdateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			UpdateSystemMetrics()
		}
	}
}

// UpdateSystemMetrics publishes heap size, goroutine count and average GC pause.
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		metrics.RecordSystemGCPauseTime(float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond)
	}
}

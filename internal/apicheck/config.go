// Package apicheck probes a running query API and verifies its contract:
// lookups are sorted and distinct, every filter is honoured, limits truncate
// and identical requests answer identically.
package apicheck

import (
	"errors"
	"time"

	"github.com/okian/pokedex/pkg/logger"
)

// Sentinel errors.
var (
	ErrUnhealthy   = errors.New("service unhealthy")
	ErrCheckFailed = errors.New("contract check failed")
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL string        // Base URL of the API
	Workers int           // Number of concurrent checkers
	Timeout time.Duration // HTTP request timeout
	// MaxProbes caps how many types and countries are probed individually.
	MaxProbes int
	Verbose   bool
	// Logger receives progress and failures. Nil discards them.
	Logger logger.Logger
}

// Stats summarises a run.
type Stats struct {
	Rows      int
	Types     int
	Countries int
	Checks    int
	Passed    int
	Failed    int
	Failures  []string
	StartTime time.Time
	Duration  time.Duration
}

// Pokemon is one record of GET /pokemon. Only the filtered fields are typed.
type Pokemon map[string]any

type health struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

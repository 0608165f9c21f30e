// Package config defines process configuration shared by the API and the dashboard.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers an optional YAML file and POKEDEX_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// APIAddr is the listen address of the query API.
	APIAddr string `koanf:"api_addr"`

	// DashboardAddr is the listen address of the dashboard.
	DashboardAddr string `koanf:"dashboard_addr"`

	// CSVPath points at the Pokédex CSV. See ResolveCSVPath for relative paths.
	CSVPath string `koanf:"csv_path"`

	// CSVDelimiter is the single-character field separator of the CSV.
	CSVDelimiter string `koanf:"csv_delimiter"`

	// DefaultLimit applies to GET /pokemon when no limit is given.
	DefaultLimit int `koanf:"default_limit"`

	// ChartWidth and ChartHeight size the rendered dashboard charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		APIAddr:       ":8000",
		DashboardAddr: ":8501",
		CSVPath:       "pokedex_enriquecida.csv",
		CSVDelimiter:  ",",
		DefaultLimit:  500,
		ChartWidth:    900,
		ChartHeight:   480,
	}
}

// ResolveCSVPath returns CSVPath when it is absolute or exists relative to the
// working directory. Otherwise a relative path is taken next to the running
// executable.
func (c *Config) ResolveCSVPath() string {
	if filepath.IsAbs(c.CSVPath) {
		return c.CSVPath
	}
	if _, err := os.Stat(c.CSVPath); err == nil {
		return c.CSVPath
	}
	exe, err := os.Executable()
	if err != nil {
		return c.CSVPath
	}
	return filepath.Join(filepath.Dir(exe), c.CSVPath)
}

// Delimiter returns CSVDelimiter as a rune, or ',' when it is empty.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

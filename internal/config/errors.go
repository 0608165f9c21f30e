package config

import (
	"errors"
)

// Sentinel errors for callers using errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

package dashboard

import "errors"

// Error constants.
var (
	// ErrChartUnavailable means the dataset lacks the columns a chart plots.
	ErrChartUnavailable = errors.New("chart unavailable")
	ErrRender           = errors.New("chart render failed")
	ErrTemplate         = errors.New("dashboard template failed")
)

package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrEmptyDataset = errors.New("CSV not loaded")
	ErrQuery        = errors.New("query failed")
)

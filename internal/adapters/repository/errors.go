package repository

import "errors"

// Sentinel kinds for load errors.
var (
	ErrOpen  = errors.New("open csv")
	ErrParse = errors.New("parse csv")
)

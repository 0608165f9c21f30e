package repository

import "github.com/okian/pokedex/pkg/logger"

// Option applies a configuration option to the CSV reader.
type Option func(*options)

type options struct {
	delimiter rune
	logger    logger.Logger
}

func defaultOptions() options {
	return options{
		delimiter: ',',
	}
}

// WithDelimiter sets the field separator.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// WithLogger sets the logger used to report load failures.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

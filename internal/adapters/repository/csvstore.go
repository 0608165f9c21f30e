package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// Open reads the CSV at path. Unlike Load it reports every failure.
func Open(_ context.Context, path string, opts ...Option) (*dataset.Dataset, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	// A leading UTF-8 byte order mark would otherwise stick to the first header.
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(dataset.NaNValues),
		dataframe.WithDelimiter(o.delimiter),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, df.Err)
	}
	return dataset.New(df), nil
}

// CSVStore is a Store backed by a CSV file read once at construction.
type CSVStore struct {
	ds  *dataset.Dataset
	err error
}

var _ Store = (*CSVStore)(nil)

// Load reads path once. Any failure leaves the store with an empty dataset;
// the cause is logged and kept in LoadErr.
func Load(ctx context.Context, path string, opts ...Option) *CSVStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = logger.Nop()
	}

	start := time.Now()
	ds, err := Open(ctx, path, opts...)
	metrics.RecordDatasetLoad(err == nil, float64(time.Since(start).Microseconds())/1000)

	s := &CSVStore{ds: ds, err: err}
	if err != nil {
		log.Warn(ctx, "csv not loaded; serving empty dataset", logger.String("path", path), logger.Error(err))
		s.ds = dataset.Empty()
	} else {
		log.Info(ctx, "csv loaded",
			logger.String("path", path),
			logger.Int("rows", ds.Len()),
			logger.Any("columns", ds.Columns()),
		)
	}
	metrics.UpdateDatasetShape(s.ds.Len(), len(s.ds.Columns()))
	return s
}

// Dataset returns the loaded table.
func (s *CSVStore) Dataset(_ context.Context) *dataset.Dataset { return s.ds }

// LoadErr reports the load failure, if any.
func (s *CSVStore) LoadErr() error { return s.err }

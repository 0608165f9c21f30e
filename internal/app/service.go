// Package service owns the Pokédex dataset for one process and implements
// the dependencies of the API and dashboard handlers.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/pokedex/internal/adapters/repository"
	"github.com/okian/pokedex/internal/config"
	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/internal/domain/types"
	"github.com/okian/pokedex/internal/domain/views"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// ErrNotStarted is returned by queries issued before Start.
var ErrNotStarted = errors.New("service not started")

// Service serves read-only queries over the dataset loaded by Start.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	csvPath      string
	defaultLimit int
	readOpts     []repository.Option

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCSVPath sets the file loaded by Start.
func WithCSVPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.csvPath = path
		}
	}
}

// WithDefaultLimit sets the GET /pokemon limit used when the client sends none.
func WithDefaultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithStore injects an already loaded store; Start then skips reading the CSV.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithReadOptions forwards options to the CSV reader.
func WithReadOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.readOpts = append(s.readOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Nothing is read until Start.
func New(opts ...Option) *Service {
	s := &Service{
		csvPath:      "pokedex_enriquecida.csv",
		defaultLimit: dataset.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig constructs a Service reading the CSV described by cfg.
// Later opts override the configured values.
func NewFromConfig(cfg *config.Config, opts ...Option) *Service {
	base := []Option{
		WithCSVPath(cfg.ResolveCSVPath()),
		WithDefaultLimit(cfg.DefaultLimit),
		WithReadOptions(repository.WithDelimiter(cfg.Delimiter())),
	}
	return New(append(base, opts...)...)
}

// Start loads the dataset once. A missing or malformed file is not an error:
// the service then answers from an empty dataset.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store != nil {
		ds := s.store.Dataset(ctx)
		metrics.UpdateDatasetShape(ds.Len(), len(ds.Columns()))
		return nil
	}

	opts := append([]repository.Option{repository.WithLogger(s.logger)}, s.readOpts...)
	s.store = repository.Load(ctx, s.csvPath, opts...)
	s.logger.Info(ctx, "pokedex service started",
		logger.String("csv_path", s.csvPath),
		logger.Int("rows", s.store.Dataset(ctx).Len()),
		logger.Int("default_limit", s.defaultLimit),
	)
	return nil
}

// Stop releases nothing; it exists for symmetry with Start.
func (s *Service) Stop() {}

func (s *Service) dataset(ctx context.Context) (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store.Dataset(ctx), nil
}

// Dataset returns the loaded dataset, or an empty one before Start.
func (s *Service) Dataset(ctx context.Context) *dataset.Dataset {
	ds, err := s.dataset(ctx)
	if err != nil {
		return dataset.Empty()
	}
	return ds
}

// DefaultLimit is the configured GET /pokemon limit.
func (s *Service) DefaultLimit() int { return s.defaultLimit }

// Rows is the dataset row count.
func (s *Service) Rows(ctx context.Context) int {
	return s.Dataset(ctx).Len()
}

// Types lists distinct Pokémon types.
func (s *Service) Types(ctx context.Context) []string {
	out := s.Dataset(ctx).Distinct(dataset.ColType)
	metrics.RecordQueryResult("types", len(out))
	return out
}

// Countries lists distinct countries.
func (s *Service) Countries(ctx context.Context) []string {
	ds := s.Dataset(ctx)
	out := []string{}
	if col, ok := ds.CountryColumn(); ok {
		out = ds.Distinct(col)
	}
	metrics.RecordQueryResult("countries", len(out))
	return out
}

// Pokemon runs q against the dataset.
func (s *Service) Pokemon(ctx context.Context, q dataset.Query) ([]types.Record, error) {
	records, err := q.Apply(s.Dataset(ctx))
	if err != nil {
		if !errors.Is(err, dataset.ErrEmptyDataset) {
			s.log().Error(ctx, "pokemon query failed", logger.Error(err))
		}
		return nil, err
	}
	metrics.RecordQueryResult("pokemon", len(records))
	return records, nil
}

// Combat builds the combat explorer view.
func (s *Service) Combat(ctx context.Context) views.CombatView {
	return views.Combat(s.Dataset(ctx))
}

// Geography builds the geography view for the selected country.
func (s *Service) Geography(ctx context.Context, country string) (views.GeographyView, error) {
	return views.Geography(s.Dataset(ctx), country)
}

// GetStats describes the loaded dataset for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":      s.store != nil,
		"csvPath":      s.csvPath,
		"defaultLimit": s.defaultLimit,
	}
	if s.store == nil {
		return stats
	}
	ds := s.store.Dataset(context.Background())
	stats["rows"] = ds.Len()
	stats["columns"] = ds.Columns()
	stats["available"] = ds.Schema().Available()
	if err := s.store.LoadErr(); err != nil {
		stats["loadError"] = err.Error()
	}
	return stats
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

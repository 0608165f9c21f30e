// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Rows(ctx context.Context) int
	Types(ctx context.Context) []string
	Countries(ctx context.Context) []string
	Pokemon(ctx context.Context, q dataset.Query) ([]types.Record, error)

	// DefaultLimit applies when GET /pokemon carries no limit.
	DefaultLimit() int
}

// Server wires HTTP routes for the query API.
type Server struct {
	healthHandler  *HealthHandler
	lookupHandler  *LookupHandler
	pokemonHandler *PokemonHandler
	statsHandler   *StatsHandler
	metricsHandler http.Handler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		lookupHandler:  NewLookupHandler(deps),
		pokemonHandler: NewPokemonHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		metricsHandler: NewMetricsHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/types", MetricsMiddleware(s.lookupHandler.HandleTypes, "types"))
	mux.HandleFunc("/countries", MetricsMiddleware(s.lookupHandler.HandleCountries, "countries"))
	mux.HandleFunc("/pokemon", MetricsMiddleware(s.pokemonHandler.HandleGetPokemon, "pokemon"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", s.metricsHandler)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

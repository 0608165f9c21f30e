package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/internal/domain/types"
)

// PokemonDependencies runs filtered queries.
type PokemonDependencies interface {
	Pokemon(ctx context.Context, q dataset.Query) ([]types.Record, error)
	DefaultLimit() int
}

// PokemonHandler handles GET /pokemon requests.
type PokemonHandler struct {
	deps PokemonDependencies
}

// NewPokemonHandler creates a new pokemon handler.
func NewPokemonHandler(deps PokemonDependencies) *PokemonHandler {
	return &PokemonHandler{deps: deps}
}

// HandleGetPokemon handles GET /pokemon?tipo=&pais=&min_total=&max_total=&limit=.
// Malformed numbers match nothing rather than failing the request.
func (h *PokemonHandler) HandleGetPokemon(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_pokemon"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := ParseQuery(r.URL.Query(), h.deps.DefaultLimit())
	records, err := h.deps.Pokemon(r.Context(), q)
	switch {
	case errors.Is(err, dataset.ErrEmptyDataset):
		writeError(w, http.StatusInternalServerError, "csv_not_loaded", dataset.ErrEmptyDataset)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	if records == nil {
		records = []types.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// ParseQuery builds a dataset query from URL parameters. Empty values are unset.
func ParseQuery(v url.Values, defaultLimit int) dataset.Query {
	q := dataset.NewQuery()
	if defaultLimit > 0 {
		q.Limit = defaultLimit
	}
	q.Tipo = v.Get("tipo")
	q.Pais = v.Get("pais")

	var ok bool
	if q.MinTotal, ok = optionalInt(v.Get("min_total")); !ok {
		q.Unsatisfiable = true
	}
	if q.MaxTotal, ok = optionalInt(v.Get("max_total")); !ok {
		q.Unsatisfiable = true
	}
	limit, ok := optionalInt(v.Get("limit"))
	switch {
	case !ok:
		q.Unsatisfiable = true
	case limit != nil:
		q.Limit = *limit
	}
	return q
}

func optionalInt(s string) (*int, bool) {
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &n, true
}

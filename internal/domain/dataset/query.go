package dataset

import (
	"fmt"

	"github.com/go-gota/gota/series"

	"github.com/okian/pokedex/internal/domain/types"
)

// DefaultLimit caps query results when the caller does not choose a limit.
const DefaultLimit = 500

// Query selects Pokémon by exact type, exact country and an inclusive Total range.
// Empty strings and nil bounds are unset.
type Query struct {
	Tipo     string
	Pais     string
	MinTotal *int
	MaxTotal *int
	// Limit truncates the result with Head semantics.
	Limit int
	// Unsatisfiable marks a query built from parameters that could not be
	// parsed; it matches nothing.
	Unsatisfiable bool
}

// NewQuery returns a query with the default limit.
func NewQuery() Query {
	return Query{Limit: DefaultLimit}
}

// Apply runs q against d. Filters are conjunctive and run in the order type,
// country, minimum total, maximum total; a filter whose column is absent is
// skipped. An empty dataset is an error.
func (q Query) Apply(d *Dataset) ([]types.Record, error) {
	if d.IsEmpty() {
		return nil, ErrEmptyDataset
	}
	if q.Unsatisfiable {
		return []types.Record{}, nil
	}

	cur := d
	var err error
	if q.Tipo != "" && cur.Has(ColType) {
		if cur, err = cur.Where(ColType, q.Tipo); err != nil {
			return nil, fmt.Errorf("%w: tipo: %w", ErrQuery, err)
		}
	}
	if q.Pais != "" {
		if col, ok := cur.CountryColumn(); ok {
			if cur, err = cur.Where(col, q.Pais); err != nil {
				return nil, fmt.Errorf("%w: pais: %w", ErrQuery, err)
			}
		}
	}
	if q.MinTotal != nil && cur.Has(ColTotal) {
		if cur, err = cur.bound(series.GreaterEq, *q.MinTotal); err != nil {
			return nil, fmt.Errorf("%w: min_total: %w", ErrQuery, err)
		}
	}
	if q.MaxTotal != nil && cur.Has(ColTotal) {
		if cur, err = cur.bound(series.LessEq, *q.MaxTotal); err != nil {
			return nil, fmt.Errorf("%w: max_total: %w", ErrQuery, err)
		}
	}
	return cur.Head(q.Limit).Records(), nil
}

// bound keeps rows whose Total satisfies cmp against limit. A non-numeric
// Total column matches nothing.
func (d *Dataset) bound(cmp series.Comparator, limit int) (*Dataset, error) {
	if d.IsEmpty() {
		return d, nil
	}
	if !d.numeric(ColTotal) {
		return d.Head(0), nil
	}
	return d.filter(ColTotal, cmp, limit)
}

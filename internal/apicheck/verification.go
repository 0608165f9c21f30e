package apicheck

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// check is one independent contract probe.
type check struct {
	name string
	run  func(ctx context.Context, c *HTTPClient) error
}

// verifySortedDistinct fails unless vals is strictly increasing and has no blanks.
func verifySortedDistinct(name string, vals []string) error {
	for i, v := range vals {
		if v == "" {
			return fmt.Errorf("%s: blank entry at %d", name, i)
		}
		if i > 0 && vals[i-1] >= v {
			return fmt.Errorf("%s: %q before %q is not sorted and distinct", name, vals[i-1], v)
		}
	}
	return nil
}

func pokemonPath(q url.Values) string {
	if len(q) == 0 {
		return "/pokemon"
	}
	return "/pokemon?" + q.Encode()
}

func fetchPokemon(ctx context.Context, c *HTTPClient, q url.Values) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if _, err := c.GetJSON(ctx, pokemonPath(q), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodePokemon(raw []json.RawMessage) ([]Pokemon, error) {
	out := make([]Pokemon, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &out[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return out, nil
}

// equalityCheck requests field=value and expects every record to match exactly.
// Numeric columns are compared in their printed form, as listed by the lookups.
func equalityCheck(param, field, value string) check {
	return check{
		name: fmt.Sprintf("%s=%s", param, value),
		run: func(ctx context.Context, c *HTTPClient) error {
			raw, err := fetchPokemon(ctx, c, url.Values{param: {value}})
			if err != nil {
				return err
			}
			if len(raw) == 0 {
				return fmt.Errorf("no records although %q is listed", value)
			}
			records, err := decodePokemon(raw)
			if err != nil {
				return err
			}
			for i, r := range records {
				if got, ok := r[field]; !ok || got == nil || fmt.Sprint(got) != value {
					return fmt.Errorf("record %d has %s=%v", i, field, r[field])
				}
			}
			return nil
		},
	}
}

// boundsCheck expects every Total within [lo, hi].
func boundsCheck(lo, hi int) check {
	return check{
		name: fmt.Sprintf("min_total=%d&max_total=%d", lo, hi),
		run: func(ctx context.Context, c *HTTPClient) error {
			raw, err := fetchPokemon(ctx, c, url.Values{
				"min_total": {strconv.Itoa(lo)},
				"max_total": {strconv.Itoa(hi)},
			})
			if err != nil {
				return err
			}
			records, err := decodePokemon(raw)
			if err != nil {
				return err
			}
			for i, r := range records {
				t, ok := r["Total"].(float64)
				if !ok || t < float64(lo) || t > float64(hi) {
					return fmt.Errorf("record %d has Total=%v outside [%d, %d]", i, r["Total"], lo, hi)
				}
			}
			return nil
		},
	}
}

// limitCheck expects limit=k to be the first k records of a longer page.
func limitCheck(k int) check {
	return check{
		name: fmt.Sprintf("limit=%d", k),
		run: func(ctx context.Context, c *HTTPClient) error {
			short, err := fetchPokemon(ctx, c, url.Values{"limit": {strconv.Itoa(k)}})
			if err != nil {
				return err
			}
			long, err := fetchPokemon(ctx, c, url.Values{"limit": {strconv.Itoa(k + 1)}})
			if err != nil {
				return err
			}
			if len(short) > k || len(long) < len(short) {
				return fmt.Errorf("got %d records for limit %d and %d for limit %d", len(short), k, len(long), k+1)
			}
			for i := range short {
				if !bytes.Equal(short[i], long[i]) {
					return fmt.Errorf("record %d differs from the longer page", i)
				}
			}
			return nil
		},
	}
}

// idempotenceCheck expects two identical requests to answer byte for byte.
func idempotenceCheck(path string) check {
	return check{
		name: "repeat " + path,
		run: func(ctx context.Context, c *HTTPClient) error {
			s1, b1, err := c.Get(ctx, path)
			if err != nil {
				return err
			}
			s2, b2, err := c.Get(ctx, path)
			if err != nil {
				return err
			}
			if s1 != s2 || !bytes.Equal(b1, b2) {
				return fmt.Errorf("responses differ (%d vs %d)", s1, s2)
			}
			return nil
		},
	}
}

// emptyDatasetCheck expects GET /pokemon to fail with csv_not_loaded.
func emptyDatasetCheck() check {
	return check{
		name: "pokemon on empty dataset",
		run: func(ctx context.Context, c *HTTPClient) error {
			status, body, err := c.Get(ctx, "/pokemon")
			if err != nil {
				return err
			}
			var e apiError
			if status != http.StatusInternalServerError || json.Unmarshal(body, &e) != nil || e.Code != "csv_not_loaded" {
				return fmt.Errorf("want 500 csv_not_loaded, got %d %s", status, body)
			}
			return nil
		},
	}
}

// sampleBounds picks a [min, median] Total range from records.
func sampleBounds(records []Pokemon) (lo, hi int, ok bool) {
	var totals []float64
	for _, r := range records {
		if t, isNum := r["Total"].(float64); isNum {
			totals = append(totals, t)
		}
	}
	if len(totals) == 0 {
		return 0, 0, false
	}
	sort.Float64s(totals)
	return int(totals[0]), int(totals[len(totals)/2]), true
}

func firstN(vals []string, n int) []string {
	if n <= 0 || n >= len(vals) {
		return slices.Clone(vals)
	}
	return slices.Clone(vals[:n])
}

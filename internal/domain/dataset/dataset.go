// Package dataset holds the in-memory Pokédex table and the read-only
// operations both front ends run against it.
package dataset

import (
	"math"
	"slices"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/pokedex/internal/domain/types"
)

// Dataset is an immutable table. The zero value is not usable; use New or Empty.
type Dataset struct {
	df     dataframe.DataFrame
	schema Schema
}

// New wraps df, folding the accented country column into ColCountry and
// computing the schema.
func New(df dataframe.DataFrame) *Dataset {
	if df.Err != nil {
		return Empty()
	}
	names := df.Names()
	if slices.Contains(names, colCountryAccented) && !slices.Contains(names, ColCountry) {
		df = df.Rename(ColCountry, colCountryAccented)
		if df.Err != nil {
			return Empty()
		}
	}
	return &Dataset{df: df, schema: newSchema(df.Names())}
}

// Empty returns a dataset with no rows and no columns.
func Empty() *Dataset {
	return &Dataset{schema: newSchema(nil)}
}

// derive keeps the schema of d for a frame produced from it.
func (d *Dataset) derive(df dataframe.DataFrame) *Dataset {
	return &Dataset{df: df, schema: d.schema}
}

// Len is the number of rows.
func (d *Dataset) Len() int {
	if len(d.schema.columns) == 0 {
		return 0
	}
	return d.df.Nrow()
}

// IsEmpty reports whether the dataset has no rows or no columns.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Schema returns the column descriptor.
func (d *Dataset) Schema() Schema { return d.schema }

// Columns lists column names in file order.
func (d *Dataset) Columns() []string { return d.schema.Columns() }

// Has reports whether col exists.
func (d *Dataset) Has(col string) bool { return d.schema.Has(col) }

// CountryColumn returns the canonical country column if the dataset has one.
func (d *Dataset) CountryColumn() (string, bool) {
	if d.Has(ColCountry) {
		return ColCountry, true
	}
	return "", false
}

// Value returns the cell at row i of col.
func (d *Dataset) Value(col string, i int) types.Value {
	if !d.Has(col) || i < 0 || i >= d.Len() {
		return types.Null()
	}
	return cell(d.df.Col(col), i)
}

// Distinct returns the sorted distinct non-null values of col.
func (d *Dataset) Distinct(col string) []string {
	out := []string{}
	if d.IsEmpty() || !d.Has(col) {
		return out
	}
	s := d.df.Col(col)
	seen := make(map[string]struct{})
	for i := 0; i < s.Len(); i++ {
		v := cell(s, i)
		if v.IsNull() {
			continue
		}
		key := v.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// numeric reports whether col holds numbers.
func (d *Dataset) numeric(col string) bool {
	if !d.Has(col) {
		return false
	}
	t := d.df.Col(col).Type()
	return t == series.Int || t == series.Float
}

// floats returns the non-null numeric values of col.
func (d *Dataset) floats(col string) []float64 {
	if d.IsEmpty() || !d.numeric(col) {
		return nil
	}
	s := d.df.Col(col)
	vals := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if f, ok := cell(s, i).Float(); ok {
			vals = append(vals, f)
		}
	}
	return vals
}

// MaxInt returns the maximum of col truncated to an int. ok is false when the
// column is absent, not numeric or has no values.
func (d *Dataset) MaxInt(col string) (int, bool) {
	vals := d.floats(col)
	if len(vals) == 0 {
		return 0, false
	}
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Max(m, v)
	}
	return int(m), true
}

// Points returns the numeric columns x and y for rows where both are present.
func (d *Dataset) Points(x, y string) (xs, ys []float64, rows []int) {
	if d.IsEmpty() || !d.numeric(x) || !d.numeric(y) {
		return nil, nil, nil
	}
	sx, sy := d.df.Col(x), d.df.Col(y)
	for i := 0; i < d.Len(); i++ {
		fx, okx := cell(sx, i).Float()
		fy, oky := cell(sy, i).Float()
		if okx && oky {
			xs = append(xs, fx)
			ys = append(ys, fy)
			rows = append(rows, i)
		}
	}
	return xs, ys, rows
}

// Where returns the rows whose col equals value. Rows with a missing col never match.
func (d *Dataset) Where(col string, value string) (*Dataset, error) {
	return d.filter(col, series.Eq, value)
}

func (d *Dataset) filter(col string, cmp series.Comparator, value any) (*Dataset, error) {
	if !d.Has(col) || d.IsEmpty() {
		return d, nil
	}
	out := d.df.Filter(dataframe.F{Colname: col, Comparator: cmp, Comparando: value})
	if out.Err != nil {
		return nil, out.Err
	}
	return d.derive(out), nil
}

// SortDesc orders rows by col descending. Missing values go last; ties keep
// their original order.
func (d *Dataset) SortDesc(col string) *Dataset {
	if d.IsEmpty() || !d.Has(col) {
		return d
	}
	s := d.df.Col(col)
	idx := make([]int, d.Len())
	for i := range idx {
		idx[i] = i
	}
	numeric := d.numeric(col)
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := cell(s, idx[a]), cell(s, idx[b])
		switch {
		case va.IsNull():
			return false
		case vb.IsNull():
			return true
		case numeric:
			fa, _ := va.Float()
			fb, _ := vb.Float()
			return fa > fb
		default:
			return va.String() > vb.String()
		}
	})
	return d.derive(d.df.Subset(idx))
}

// Head returns the first n rows. A negative n drops the last -n rows instead.
func (d *Dataset) Head(n int) *Dataset {
	total := d.Len()
	if n < 0 {
		n = max(total+n, 0)
	}
	if n >= total {
		return d
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return d.derive(d.df.Subset(idx))
}

// Table renders every cell as display text, missing values as "".
func (d *Dataset) Table() (header []string, rows [][]string) {
	header = d.Columns()
	rows = make([][]string, d.Len())
	cols := make([]series.Series, len(header))
	for j, name := range header {
		cols[j] = d.df.Col(name)
	}
	for i := range rows {
		row := make([]string, len(header))
		for j := range header {
			row[j] = cell(cols[j], i).String()
		}
		rows[i] = row
	}
	return header, rows
}

// Records projects every row into an API record. Column order is kept and
// a few raw names are replaced by identifier-safe ones unless that would
// collide with an existing column.
func (d *Dataset) Records() []types.Record {
	names := d.Columns()
	keys := make([]string, len(names))
	for j, name := range names {
		keys[j] = name
		if renamed, ok := apiRenames[name]; ok && !d.Has(renamed) {
			keys[j] = renamed
		}
	}
	cols := make([]series.Series, len(names))
	for j, name := range names {
		cols[j] = d.df.Col(name)
	}

	out := make([]types.Record, d.Len())
	for i := range out {
		r := types.NewRecord(len(names))
		for j := range names {
			r.Set(keys[j], cell(cols[j], i))
		}
		out[i] = r
	}
	return out
}

// cell converts element i of s into a tagged scalar.
func cell(s series.Series, i int) types.Value {
	e := s.Elem(i)
	if e.IsNA() {
		return types.Null()
	}
	switch s.Type() {
	case series.Int:
		n, err := e.Int()
		if err != nil {
			return types.Null()
		}
		return types.IntValue(n)
	case series.Float:
		return types.FloatValue(e.Float())
	case series.Bool:
		b, err := e.Bool()
		if err != nil {
			return types.Null()
		}
		return types.BoolValue(b)
	default:
		return types.StringValue(e.String())
	}
}

package dataset

import (
	"math"
	"sort"
)

// GroupMean is the mean of a value column for one group.
type GroupMean struct {
	Group string
	Mean  float64
	// Count is the number of non-null values averaged; Mean is NaN when zero.
	Count int
}

// Valid reports whether Mean is defined.
func (g GroupMean) Valid() bool { return g.Count > 0 }

// MeanBy averages value per distinct non-null group, sorted by group.
// Rows with a missing group are skipped; missing values do not count.
func (d *Dataset) MeanBy(group, value string) []GroupMean {
	out := []GroupMean{}
	if d.IsEmpty() || !d.Has(group) || !d.numeric(value) {
		return out
	}
	gs, vs := d.df.Col(group), d.df.Col(value)

	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[string]*acc)
	for i := 0; i < d.Len(); i++ {
		g := cell(gs, i)
		if g.IsNull() {
			continue
		}
		key := g.String()
		a, ok := sums[key]
		if !ok {
			a = &acc{}
			sums[key] = a
		}
		if f, ok := cell(vs, i).Float(); ok {
			a.sum += f
			a.count++
		}
	}

	for key, a := range sums {
		m := math.NaN()
		if a.count > 0 {
			m = a.sum / float64(a.count)
		}
		out = append(out, GroupMean{Group: key, Mean: m, Count: a.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// Bin is one equal-width bucket of a numeric histogram. Lo is inclusive;
// Hi is exclusive except for the last bin.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits the non-null values of col into n equal-width bins over
// [min, max]. A constant column yields a single bin.
func (d *Dataset) Histogram(col string, n int) []Bin {
	vals := d.floats(col)
	if len(vals) == 0 || n < 1 {
		return []Bin{}
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(vals)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

// Count is the frequency of one categorical value.
type Count struct {
	Label string
	Count int
}

// Counts tallies the non-null values of col in order of first appearance.
func (d *Dataset) Counts(col string) []Count {
	out := []Count{}
	if d.IsEmpty() || !d.Has(col) {
		return out
	}
	s := d.df.Col(col)
	pos := make(map[string]int)
	for i := 0; i < s.Len(); i++ {
		v := cell(s, i)
		if v.IsNull() {
			continue
		}
		key := v.String()
		if j, ok := pos[key]; ok {
			out[j].Count++
			continue
		}
		pos[key] = len(out)
		out = append(out, Count{Label: key, Count: 1})
	}
	return out
}

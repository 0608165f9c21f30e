package dashboard

import (
	"fmt"
	"io"
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/internal/domain/views"
)

// Dot widths of the scatter, scaled linearly with Total.
const (
	minDotWidth = 3.0
	maxDotWidth = 14.0
	// labelledPoints is how many of the strongest Pokémon get a name label.
	labelledPoints = 10
)

var chartPadding = chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}

// Scatter draws Ataque against Defensa with dot size proportional to Total.
// The strongest points are labelled with Nombre.
func Scatter(ds *dataset.Dataset, width, height int, w io.Writer) error {
	if ds.IsEmpty() || !ds.Schema().HasAll(views.ScatterColumns...) {
		return ErrChartUnavailable
	}
	xs, ys, rows := ds.Points(dataset.ColAttack, dataset.ColDefense)
	if len(xs) == 0 {
		return ErrChartUnavailable
	}

	totals := make([]float64, len(rows))
	for i, row := range rows {
		if t, ok := ds.Value(dataset.ColTotal, row).Float(); ok {
			totals[i] = t
		} else {
			totals[i] = math.NaN()
		}
	}
	sizes := dotWidths(totals)

	points := chart.ContinuousSeries{
		Name:    "Pokémon",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    chart.ColorBlue.WithAlpha(150),
			DotWidth:    minDotWidth,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				return sizes[index]
			},
		},
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := totals[order[a]], totals[order[b]]
		if math.IsNaN(tb) {
			return !math.IsNaN(ta)
		}
		return ta > tb
	})
	labels := chart.AnnotationSeries{Name: dataset.ColName}
	for _, i := range order[:min(labelledPoints, len(order))] {
		if math.IsNaN(totals[i]) {
			break
		}
		labels.Annotations = append(labels.Annotations, chart.Value2{
			XValue: xs[i],
			YValue: ys[i],
			Label:  ds.Value(dataset.ColName, rows[i]).String(),
		})
	}

	ch := chart.Chart{
		Title:      "Ataque vs Defensa",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chartPadding},
		XAxis:      chart.XAxis{Name: dataset.ColAttack, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: dataset.ColDefense, Range: paddedRange(ys)},
		Series:     []chart.Series{points},
	}
	if len(labels.Annotations) > 0 {
		ch.Series = append(ch.Series, labels)
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: scatter: %w", ErrRender, err)
	}
	return nil
}

// HPHistogram draws the HP distribution in views.HPBins buckets.
func HPHistogram(ds *dataset.Dataset, width, height int, w io.Writer) error {
	if ds.IsEmpty() || !ds.Has(dataset.ColHP) {
		return ErrChartUnavailable
	}
	bins := ds.Histogram(dataset.ColHP, views.HPBins)
	values := make([]chart.Value, 0, len(bins))
	for _, b := range bins {
		values = append(values, chart.Value{Value: float64(b.Count), Label: fmt.Sprintf("%.0f", b.Lo)})
	}
	return bars("Distribución de HP", values, width, height, w)
}

// TypeHistogram draws the Tipo counts of one country's Pokémon.
func TypeHistogram(ds *dataset.Dataset, country string, width, height int, w io.Writer) error {
	if ds.IsEmpty() || !ds.Has(dataset.ColType) {
		return ErrChartUnavailable
	}
	subset, err := views.CountryRows(ds, country)
	if err != nil {
		return fmt.Errorf("%w: types: %w", ErrRender, err)
	}
	counts := subset.Counts(dataset.ColType)
	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		values = append(values, chart.Value{Value: float64(c.Count), Label: c.Label})
	}
	return bars("Distribución de Tipos en "+country, values, width, height, w)
}

func bars(title string, values []chart.Value, width, height int, w io.Writer) error {
	if len(values) == 0 {
		return ErrChartUnavailable
	}
	top := 1.0
	for _, v := range values {
		top = math.Max(top, v.Value)
	}
	slot := max((width-chartPadding.Left-chartPadding.Right-80)/len(values), 2)

	bc := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chartPadding},
		BarWidth:   max(slot*4/5, 1),
		BarSpacing: max(slot/5, 1),
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top}},
		Bars:       values,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, title, err)
	}
	return nil
}

// dotWidths maps each total onto [minDotWidth, maxDotWidth]. Missing totals
// get the smallest dot.
func dotWidths(totals []float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range totals {
		if math.IsNaN(t) {
			continue
		}
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	out := make([]float64, len(totals))
	for i, t := range totals {
		switch {
		case math.IsNaN(t):
			out[i] = minDotWidth
		case hi <= lo:
			out[i] = (minDotWidth + maxDotWidth) / 2
		default:
			out[i] = minDotWidth + (t-lo)/(hi-lo)*(maxDotWidth-minDotWidth)
		}
	}
	return out
}

// paddedRange spans vals with a margin so no axis has a zero delta.
func paddedRange(vals []float64) *chart.ContinuousRange {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

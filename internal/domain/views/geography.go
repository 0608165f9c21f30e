package views

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/okian/pokedex/internal/domain/dataset"
)

// MeanTotalColumn names the averaged Total in the per-country table.
const MeanTotalColumn = "MediaTotal"

// GeographyView is the "Geografía Pokémon" page.
type GeographyView struct {
	Title    string
	Subtitle string
	// Empty and Unavailable stop the page after Message.
	Empty       bool
	Unavailable bool
	Message     string

	Means      []dataset.GroupMean
	MeansTable Table
	// Countries feeds the selector; it comes from the raw rows, not the aggregate.
	Countries []string

	Selected         string
	Top              Table
	HasTypeHistogram bool
}

// Geography builds the geography page. selected is ignored unless it is one
// of the dataset's countries.
func Geography(ds *dataset.Dataset, selected string) (GeographyView, error) {
	v := GeographyView{Title: GeographyLabel, Subtitle: GeographySubtitle}
	if ds.IsEmpty() {
		v.Empty = true
		v.Message = GeographyEmptyMsg
		return v, nil
	}
	col, ok := ds.CountryColumn()
	if !ok || !ds.Has(dataset.ColTotal) {
		v.Unavailable = true
		v.Message = GeographyNoColMsg
		return v, nil
	}

	v.Means = ds.MeanBy(col, dataset.ColTotal)
	v.MeansTable = Table{Header: []string{col, MeanTotalColumn}, Rows: make([][]string, 0, len(v.Means))}
	for _, m := range v.Means {
		mean := ""
		if m.Valid() {
			mean = strconv.FormatFloat(m.Mean, 'f', 2, 64)
		}
		v.MeansTable.Rows = append(v.MeansTable.Rows, []string{m.Group, mean})
	}
	v.Countries = ds.Distinct(col)

	if selected == "" || !slices.Contains(v.Countries, selected) {
		return v, nil
	}
	subset, err := CountryRows(ds, selected)
	if err != nil {
		return v, err
	}
	v.Selected = selected
	v.Top = tableOf(subset.SortDesc(dataset.ColTotal).Head(TopRows))
	v.HasTypeHistogram = subset.Has(dataset.ColType)
	return v, nil
}

// CountryRows returns the rows of ds from country.
func CountryRows(ds *dataset.Dataset, country string) (*dataset.Dataset, error) {
	col, ok := ds.CountryColumn()
	if !ok {
		return dataset.Empty(), nil
	}
	subset, err := ds.Where(col, country)
	if err != nil {
		return nil, fmt.Errorf("filter %s=%q: %w", col, country, err)
	}
	return subset, nil
}

package dashboard

import (
	"fmt"
	"html/template"

	"github.com/goccy/go-json"

	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/internal/domain/views"
)

// PageTitle is the browser title of every view.
const PageTitle = "Pokedex Explorer"

// Page is the template model. Exactly one of Combat and Geography is set.
type Page struct {
	Title  string
	Labels []string
	View   string

	Combat    *views.CombatView
	Geography *views.GeographyView
	// Choropleth is the Plotly trace for the mean-Total map.
	Choropleth template.JS
}

type choroplethTrace struct {
	Type         string    `json:"type"`
	LocationMode string    `json:"locationmode"`
	Locations    []string  `json:"locations"`
	Z            []float64 `json:"z"`
	ColorBar     colorBar  `json:"colorbar"`
}

type colorBar struct {
	Title string `json:"title"`
}

// choropleth encodes the per-country means as a Plotly trace. Countries
// without a single Total are left off the map.
func choropleth(means []dataset.GroupMean) (template.JS, error) {
	trace := choroplethTrace{
		Type:         "choropleth",
		LocationMode: "country names",
		Locations:    make([]string, 0, len(means)),
		Z:            make([]float64, 0, len(means)),
		ColorBar:     colorBar{Title: views.MeanTotalColumn},
	}
	for _, m := range means {
		if !m.Valid() {
			continue
		}
		trace.Locations = append(trace.Locations, m.Group)
		trace.Z = append(trace.Z, m.Mean)
	}
	b, err := json.Marshal(trace)
	if err != nil {
		return "", fmt.Errorf("encode choropleth: %w", err)
	}
	return template.JS(b), nil //nolint:gosec // JSON produced by the encoder above
}

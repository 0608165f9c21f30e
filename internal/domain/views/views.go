// Package views computes what each dashboard page shows from a dataset.
// The functions are pure; rendering lives in the HTTP adapter.
package views

import (
	"strconv"

	"github.com/okian/pokedex/internal/domain/dataset"
)

// View labels as shown in the sidebar selector.
const (
	CombatLabel    = "Explorador de Combate"
	GeographyLabel = "Geografía Pokémon"
)

// Labels lists the selectable views in sidebar order.
var Labels = []string{CombatLabel, GeographyLabel}

// Placeholder texts.
const (
	NotAvailable      = "N/A"
	CombatEmptyMsg    = "No hay datos para mostrar con los filtros seleccionados."
	GeographyEmptyMsg = "No hay datos para mostrar en la vista Geografía."
	GeographyNoColMsg = "La columna de país o Total no está disponible en los datos."
	GeographySubtitle = "Mapa de fuerza promedio por país (choropleth) y distribuciones por país"
)

// HPBins is the bucket count of the HP histogram.
const HPBins = 20

// TopRows bounds the per-country table.
const TopRows = 10

// Metric is a headline number. Value is NotAvailable when the column is missing.
type Metric struct {
	Label string
	Value string
}

// Table is a rendered grid of cells.
type Table struct {
	Header []string
	Rows   [][]string
}

func tableOf(ds *dataset.Dataset) Table {
	h, r := ds.Table()
	return Table{Header: h, Rows: r}
}

func maxMetric(ds *dataset.Dataset, label, col string) Metric {
	if v, ok := ds.MaxInt(col); ok {
		return Metric{Label: label, Value: strconv.Itoa(v)}
	}
	return Metric{Label: label, Value: NotAvailable}
}

package views

import "github.com/okian/pokedex/internal/domain/dataset"

// ScatterColumns must all be present for the attack/defense scatter.
var ScatterColumns = []string{dataset.ColAttack, dataset.ColDefense, dataset.ColName, dataset.ColTotal}

// CombatView is the "Explorador de Combate" page.
type CombatView struct {
	Title   string
	Empty   bool
	Message string

	Metrics        []Metric
	HasScatter     bool
	HasHPHistogram bool
	Table          Table
}

// Combat builds the combat explorer for ds.
func Combat(ds *dataset.Dataset) CombatView {
	v := CombatView{Title: CombatLabel}
	if ds.IsEmpty() {
		v.Empty = true
		v.Message = CombatEmptyMsg
		return v
	}

	v.Metrics = []Metric{
		maxMetric(ds, "Pokémon con mayor Ataque", dataset.ColAttack),
		maxMetric(ds, "Pokémon con mayor Velocidad", dataset.ColSpeed),
		maxMetric(ds, "Máximo Total", dataset.ColTotal),
	}
	v.HasScatter = ds.Schema().HasAll(ScatterColumns...)
	v.HasHPHistogram = ds.Has(dataset.ColHP)
	v.Table = tableOf(ds)
	return v
}

package dataset

import "slices"

// Known column names of the Pokédex CSV.
const (
	ColName     = "Nombre"
	ColType     = "Tipo"
	ColCountry  = "Pais"
	ColAttack   = "Ataque"
	ColDefense  = "Defensa"
	ColSpeed    = "Velocidad"
	ColHP       = "HP"
	ColTotal    = "Total"
	ColSpAttack = "Sp. Atk"
	ColSpDef    = "Sp. Def"

	// colCountryAccented is folded into ColCountry at load time.
	colCountryAccented = "País"
)

// KnownColumns lists the optional columns features depend on.
var KnownColumns = []string{
	ColName, ColType, ColCountry, ColAttack, ColDefense, ColSpeed, ColHP, ColTotal,
}

// NaNValues are the CSV tokens read as missing values.
var NaNValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "<nil>"}

// apiRenames maps raw column names to identifiers safe for API clients.
var apiRenames = map[string]string{
	ColSpAttack:        "Sp_Atk",
	ColSpDef:           "Sp_Def",
	colCountryAccented: ColCountry,
}

// Schema describes which columns a dataset carries. It is computed once per
// dataset and consulted by features instead of probing the frame.
type Schema struct {
	columns []string
	present map[string]struct{}
}

func newSchema(columns []string) Schema {
	s := Schema{
		columns: slices.Clone(columns),
		present: make(map[string]struct{}, len(columns)),
	}
	for _, c := range columns {
		s.present[c] = struct{}{}
	}
	return s
}

// Has reports whether col exists.
func (s Schema) Has(col string) bool {
	_, ok := s.present[col]
	return ok
}

// HasAll reports whether every col exists.
func (s Schema) HasAll(cols ...string) bool {
	for _, c := range cols {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Columns returns the column names in file order.
func (s Schema) Columns() []string {
	return slices.Clone(s.columns)
}

// Available returns the known columns that are present, in KnownColumns order.
func (s Schema) Available() []string {
	out := make([]string, 0, len(KnownColumns))
	for _, c := range KnownColumns {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

package dataset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pokedex/internal/domain/dataset"
)

const starterCSV = `Nombre,Tipo,Pais,Total
Pikachu,Electric,Japan,320
Bulbasaur,Grass,Japan,318
Charmander,Fire,USA,309
`

const combatCSV = `Nombre,Tipo,HP,Ataque,Defensa,Sp. Atk,Sp. Def,Velocidad,Total,País
Bulbasaur,Grass,45,49,49,65,65,45,318,Japan
Ivysaur,Grass,60,62,63,80,80,60,405,Japan
Charmander,Fire,39,52,43,60,50,65,309,USA
Squirtle,Water,44,48,65,50,64,43,314,
Pikachu,Electric,35,55,40,50,50,90,320,Japan
Mewtwo,Psychic,106,110,90,154,90,130,680,USA
`

func frame(csv string) *dataset.Dataset {
	return dataset.New(dataframe.ReadCSV(strings.NewReader(csv), dataframe.NaNValues(dataset.NaNValues)))
}

func intp(v int) *int { return &v }

func names(t *testing.T, ds *dataset.Dataset) []string {
	t.Helper()
	out := []string{}
	for i := 0; i < ds.Len(); i++ {
		out = append(out, ds.Value(dataset.ColName, i).String())
	}
	return out
}

func TestNew(t *testing.T) {
	Convey("Given a CSV with the accented country column", t, func() {
		ds := frame(combatCSV)

		Convey("Then the column is folded into Pais", func() {
			So(ds.Has(dataset.ColCountry), ShouldBeTrue)
			So(ds.Has("País"), ShouldBeFalse)
			col, ok := ds.CountryColumn()
			So(ok, ShouldBeTrue)
			So(col, ShouldEqual, "Pais")
		})

		Convey("And the schema lists the known columns present", func() {
			So(ds.Schema().Available(), ShouldResemble, []string{
				"Nombre", "Tipo", "Pais", "Ataque", "Defensa", "Velocidad", "HP", "Total",
			})
			So(ds.Len(), ShouldEqual, 6)
		})
	})

	Convey("Given a frame with a load error", t, func() {
		ds := dataset.New(dataframe.DataFrame{Err: errors.New("bad csv")})

		Convey("Then the dataset is empty", func() {
			So(ds.IsEmpty(), ShouldBeTrue)
			So(ds.Columns(), ShouldBeEmpty)
		})
	})

	Convey("Given the empty dataset", t, func() {
		ds := dataset.Empty()

		Convey("Then every read degrades to an empty answer", func() {
			So(ds.Len(), ShouldEqual, 0)
			So(ds.Distinct(dataset.ColType), ShouldResemble, []string{})
			_, ok := ds.MaxInt(dataset.ColTotal)
			So(ok, ShouldBeFalse)
			So(ds.MeanBy(dataset.ColCountry, dataset.ColTotal), ShouldBeEmpty)
			So(ds.Histogram(dataset.ColHP, 20), ShouldBeEmpty)
			So(ds.Records(), ShouldBeEmpty)
		})
	})
}

func TestDistinct(t *testing.T) {
	Convey("Given the starter dataset", t, func() {
		ds := frame(starterCSV)

		Convey("Then types are sorted and unique", func() {
			So(ds.Distinct(dataset.ColType), ShouldResemble, []string{"Electric", "Fire", "Grass"})
		})

		Convey("And countries skip missing values", func() {
			So(frame(combatCSV).Distinct(dataset.ColCountry), ShouldResemble, []string{"Japan", "USA"})
		})

		Convey("And an absent column yields an empty list", func() {
			So(ds.Distinct(dataset.ColHP), ShouldResemble, []string{})
		})
	})
}

func TestAggregates(t *testing.T) {
	Convey("Given the combat dataset", t, func() {
		ds := frame(combatCSV)

		Convey("When taking maxima", func() {
			atk, ok := ds.MaxInt(dataset.ColAttack)
			So(ok, ShouldBeTrue)
			So(atk, ShouldEqual, 110)
			_, ok = ds.MaxInt(dataset.ColName)
			So(ok, ShouldBeFalse)
		})

		Convey("When averaging Total by country", func() {
			means := ds.MeanBy(dataset.ColCountry, dataset.ColTotal)

			Convey("Then rows without a country are excluded", func() {
				So(len(means), ShouldEqual, 2)
				So(means[0].Group, ShouldEqual, "Japan")
				So(means[0].Mean, ShouldAlmostEqual, (318.0+405+320)/3, 1e-9)
				So(means[0].Count, ShouldEqual, 3)
				So(means[1].Group, ShouldEqual, "USA")
				So(means[1].Mean, ShouldAlmostEqual, (309.0+680)/2, 1e-9)
			})
		})

		Convey("When bucketing HP into 20 bins", func() {
			bins := ds.Histogram(dataset.ColHP, 20)

			Convey("Then every value lands in exactly one bin", func() {
				So(len(bins), ShouldEqual, 20)
				total := 0
				for _, b := range bins {
					total += b.Count
				}
				So(total, ShouldEqual, 6)
				So(bins[0].Lo, ShouldEqual, 35)
				So(bins[19].Hi, ShouldEqual, 106)
				So(bins[19].Count, ShouldEqual, 1)
			})
		})

		Convey("When a column is constant", func() {
			bins := frame("HP\n10\n10\n").Histogram(dataset.ColHP, 20)

			Convey("Then a single bin holds every value", func() {
				So(len(bins), ShouldEqual, 1)
				So(bins[0].Count, ShouldEqual, 2)
			})
		})

		Convey("When counting types", func() {
			counts := ds.Counts(dataset.ColType)

			Convey("Then labels keep first-appearance order", func() {
				So(counts[0], ShouldResemble, dataset.Count{Label: "Grass", Count: 2})
				So(counts[1].Label, ShouldEqual, "Fire")
				So(len(counts), ShouldEqual, 5)
			})
		})
	})
}

func TestOrdering(t *testing.T) {
	Convey("Given the combat dataset", t, func() {
		ds := frame(combatCSV)

		Convey("When sorting by Total descending", func() {
			sorted := ds.SortDesc(dataset.ColTotal)

			Convey("Then the strongest comes first", func() {
				So(names(t, sorted), ShouldResemble, []string{
					"Mewtwo", "Ivysaur", "Pikachu", "Bulbasaur", "Squirtle", "Charmander",
				})
			})
		})

		Convey("When taking heads", func() {
			So(ds.Head(2).Len(), ShouldEqual, 2)
			So(ds.Head(100).Len(), ShouldEqual, 6)
			So(ds.Head(0).Len(), ShouldEqual, 0)
			So(names(t, ds.Head(-4)), ShouldResemble, []string{"Bulbasaur", "Ivysaur"})
			So(ds.Head(-10).Len(), ShouldEqual, 0)
		})

		Convey("When filtering by country", func() {
			japan, err := ds.Where(dataset.ColCountry, "Japan")

			Convey("Then only matching rows remain", func() {
				So(err, ShouldBeNil)
				So(names(t, japan), ShouldResemble, []string{"Bulbasaur", "Ivysaur", "Pikachu"})
				So(japan.Schema().Columns(), ShouldResemble, ds.Schema().Columns())
			})
		})
	})
}

func TestRecords(t *testing.T) {
	Convey("Given the combat dataset", t, func() {
		records := frame(combatCSV).Records()

		Convey("Then special columns are renamed and order is kept", func() {
			So(records[0].Keys(), ShouldResemble, []string{
				"Nombre", "Tipo", "HP", "Ataque", "Defensa", "Sp_Atk", "Sp_Def", "Velocidad", "Total", "Pais",
			})
		})

		Convey("And missing cells serialize as null", func() {
			b, err := json.Marshal(records[3])
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"Pais":null`)
			So(string(b), ShouldStartWith, `{"Nombre":"Squirtle","Tipo":"Water","HP":44`)
		})
	})

	Convey("Given a table", t, func() {
		header, rows := frame(combatCSV).Table()

		Convey("Then missing cells render empty", func() {
			So(header[0], ShouldEqual, "Nombre")
			So(len(rows), ShouldEqual, 6)
			So(rows[3][9], ShouldEqual, "")
		})
	})
}

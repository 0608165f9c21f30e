package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pokedex/internal/domain/dataset"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokedex.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	Convey("Given a well formed CSV", t, func() {
		path := writeCSV(t, "Nombre,Tipo,País,Total\nPikachu,Electric,Japan,320\nEevee,Normal,NA,325\n")

		Convey("When it is opened", func() {
			ds, err := Open(context.Background(), path)

			Convey("Then rows and normalized columns are available", func() {
				So(err, ShouldBeNil)
				So(ds.Len(), ShouldEqual, 2)
				So(ds.Columns(), ShouldResemble, []string{"Nombre", "Tipo", "Pais", "Total"})
				So(ds.Value(dataset.ColCountry, 1).IsNull(), ShouldBeTrue)
				total, ok := ds.Value(dataset.ColTotal, 0).Int()
				So(ok, ShouldBeTrue)
				So(total, ShouldEqual, 320)
			})
		})
	})

	Convey("Given a CSV saved with a UTF-8 byte order mark", t, func() {
		path := writeCSV(t, "\xef\xbb\xbfNombre,Tipo,Pais,Total\nPikachu,Electric,Japan,320\n")

		Convey("When it is opened", func() {
			ds, err := Open(context.Background(), path)

			Convey("Then the first header carries no mark", func() {
				So(err, ShouldBeNil)
				So(ds.Columns(), ShouldResemble, []string{"Nombre", "Tipo", "Pais", "Total"})
				So(ds.Has(dataset.ColName), ShouldBeTrue)
				So(ds.Value(dataset.ColName, 0).String(), ShouldEqual, "Pikachu")
			})
		})
	})

	Convey("Given a semicolon separated CSV", t, func() {
		path := writeCSV(t, "Nombre;Total\nPikachu;320\n")

		Convey("When the delimiter is configured", func() {
			ds, err := Open(context.Background(), path, WithDelimiter(';'))

			Convey("Then the columns are split correctly", func() {
				So(err, ShouldBeNil)
				So(ds.Columns(), ShouldResemble, []string{"Nombre", "Total"})
			})
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := Open(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))

		Convey("Then ErrOpen is reported", func() {
			So(errors.Is(err, ErrOpen), ShouldBeTrue)
		})
	})

	Convey("Given a file with ragged rows", t, func() {
		path := writeCSV(t, "Nombre,Total\nPikachu,320,extra\n")
		_, err := Open(context.Background(), path)

		Convey("Then ErrParse is reported", func() {
			So(errors.Is(err, ErrParse), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a missing file", t, func() {
		store := Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))

		Convey("Then the store serves an empty dataset", func() {
			ds := store.Dataset(context.Background())
			So(ds, ShouldNotBeNil)
			So(ds.IsEmpty(), ShouldBeTrue)
			So(errors.Is(store.LoadErr(), ErrOpen), ShouldBeTrue)
		})
	})

	Convey("Given a readable file", t, func() {
		path := writeCSV(t, "Nombre,Total\nPikachu,320\n")
		store := Load(context.Background(), path)

		Convey("Then the dataset is loaded", func() {
			So(store.LoadErr(), ShouldBeNil)
			So(store.Dataset(context.Background()).Len(), ShouldEqual, 1)
		})
	})
}

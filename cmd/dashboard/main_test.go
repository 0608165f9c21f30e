package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/pokedex/internal/app"
	"github.com/okian/pokedex/internal/config"
	"github.com/okian/pokedex/pkg/logger"
)

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service and default configuration", t, func() {
		path := filepath.Join(t.TempDir(), "pokedex.csv")
		convey.So(os.WriteFile(path, []byte("Nombre,Ataque,Defensa,HP,Total\nPikachu,55,40,35,320\n"), 0o600), convey.ShouldBeNil)

		ctx := context.Background()
		svc := app.New(app.WithCSVPath(path), app.WithLogger(logger.Nop()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)

		h, err := newHandler(ctx, config.New(), svc, logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the dashboard routes are wired", func() {
			for _, path := range []string{"/dashboard", "/dashboard/charts/scatter.png", "/dashboard/charts/hp.png", "/dashboard/static/style.css", "/metrics"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("And the root redirects", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusFound)
		})
	})
}

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

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the api configuration", t, func() {
		convey.Convey("When environment overrides are set", func() {
			t.Setenv("POKEDEX_API_ADDR", ":9000")
			t.Setenv("POKEDEX_DEFAULT_LIMIT", "25")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIAddr, convey.ShouldEqual, ":9000")
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When the address is blanked", func() {
			t.Setenv("POKEDEX_API_ADDR", " ")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		path := filepath.Join(t.TempDir(), "pokedex.csv")
		convey.So(os.WriteFile(path, []byte("Nombre,Tipo,Total\nPikachu,Electric,320\n"), 0o600), convey.ShouldBeNil)

		ctx := context.Background()
		svc := app.New(app.WithCSVPath(path), app.WithLogger(logger.Nop()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		h := newHandler(ctx, svc, logger.Nop())

		convey.Convey("Then every api route is wired", func() {
			for _, path := range []string{"/health", "/types", "/countries", "/pokemon", "/stats", "/metrics", "/api-docs", "/openapi.yaml"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			}
		})
	})
}

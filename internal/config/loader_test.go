package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/pokedex/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.APIAddr, convey.ShouldEqual, ":8000")
				convey.So(cfg.DashboardAddr, convey.ShouldEqual, ":8501")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "pokedex_enriquecida.csv")
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("POKEDEX_API_ADDR", ":9000")
			_ = os.Setenv("POKEDEX_CSV_PATH", "/data/pokedex.csv")
			_ = os.Setenv("POKEDEX_DEFAULT_LIMIT", "50")
			_ = os.Setenv("POKEDEX_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIAddr, convey.ShouldEqual, ":9000")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "/data/pokedex.csv")
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 50)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.DashboardAddr, convey.ShouldEqual, ":8501")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dashboard tuning
dashboard_addr: ":8600"
csv_path: "fixtures/pokedex.csv"
chart_width: 1200
chart_height: 600
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("POKEDEX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DashboardAddr, convey.ShouldEqual, ":8600")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "fixtures/pokedex.csv")
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 1200)
				convey.So(cfg.ChartHeight, convey.ShouldEqual, 600)
				convey.So(cfg.APIAddr, convey.ShouldEqual, ":8000")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
api_addr: ":9090"
default_limit: 100
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("POKEDEX_CONFIG", tmpFile)
			_ = os.Setenv("POKEDEX_API_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIAddr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("POKEDEX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("POKEDEX_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty csv path", func() {
			_ = os.Setenv("POKEDEX_CSV_PATH", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "csv_path must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a semicolon delimiter", func() {
			_ = os.Setenv("POKEDEX_CSV_DELIMITER", ";")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the delimiter rune is a semicolon", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Delimiter(), convey.ShouldEqual, ';')
			})
		})

		convey.Convey("When loading config with a multi-character delimiter", func() {
			_ = os.Setenv("POKEDEX_CSV_DELIMITER", ";;")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "csv_delimiter")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero chart width", func() {
			_ = os.Setenv("POKEDEX_CHART_WIDTH", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("POKEDEX_DEFAULT_LIMIT", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"POKEDEX_CONFIG",
		"POKEDEX_LOG_LEVEL",
		"POKEDEX_LOG_FORMAT",
		"POKEDEX_API_ADDR",
		"POKEDEX_DASHBOARD_ADDR",
		"POKEDEX_CSV_PATH",
		"POKEDEX_CSV_DELIMITER",
		"POKEDEX_DEFAULT_LIMIT",
		"POKEDEX_CHART_WIDTH",
		"POKEDEX_CHART_HEIGHT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pokedex-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

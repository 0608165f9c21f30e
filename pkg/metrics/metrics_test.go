package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then the collectors are registered there", func() {
				So(manager, ShouldNotBeNil)
				manager.datasetRows.Set(1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("api"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithSizeBuckets([]float64{1, 2}),
				WithConstLabels(map[string]string{"frontend": "api"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "api")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
				So(manager.sizeBuckets, ShouldResemble, []float64{1, 2})
				So(manager.constLabels["frontend"], ShouldEqual, "api")
			})
		})

		Convey("When empty option values are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "pokedex")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording dataset loads", func() {
			okBefore := testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("ok"))
			errBefore := testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("error"))

			RecordDatasetLoad(true, 3)
			RecordDatasetLoad(false, 1)
			UpdateDatasetShape(800, 12)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("ok")), ShouldEqual, okBefore+1)
				So(testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("error")), ShouldEqual, errBefore+1)
				So(testutil.ToFloat64(globalManager.datasetRows), ShouldEqual, 800)
				So(testutil.ToFloat64(globalManager.datasetColumns), ShouldEqual, 12)
			})
		})

		Convey("When recording HTTP metrics", func() {
			before := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("pokemon", "GET", "500"))
			RecordHTTPRequest("pokemon", "GET", "500")
			RecordHTTPRequestDuration("pokemon", "GET", "500", 2)
			RecordErrorByEndpoint("pokemon", "GET", "server_error")
			RecordErrorByType("server_error", "high")

			Convey("Then the request counter increments", func() {
				So(testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("pokemon", "GET", "500")), ShouldEqual, before+1)
			})
		})

		Convey("When recording chart renders", func() {
			before := testutil.ToFloat64(globalManager.chartRenderErrors.WithLabelValues("hp"))
			RecordChartRender("hp", 4, nil)
			RecordChartRender("hp", 4, errors.New("zero range"))
			RecordQueryResult("pokemon", 3)

			Convey("Then only failures count as errors", func() {
				So(testutil.ToFloat64(globalManager.chartRenderErrors.WithLabelValues("hp")), ShouldEqual, before+1)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		UpdateDatasetShape(3, 4)
		rec := httptest.NewRecorder()
		promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

		Convey("Then it exposes pokedex metrics and no Go runtime collectors", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "pokedex_dataset_rows 3")
			So(rec.Body.String(), ShouldNotContainSubstring, "go_goroutines")
		})
	})
}

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given the apicheck command", t, func() {
		Convey("When help is requested", func() {
			So(run([]string{"-help"}), ShouldEqual, 0)
		})

		Convey("When a flag is unknown", func() {
			So(run([]string{"-nope"}), ShouldEqual, 2)
		})

		Convey("When the API is unhealthy", func() {
			srv := httptest.NewServer(http.NotFoundHandler())
			defer srv.Close()
			So(run([]string{"-url", srv.URL + "/", "-timeout", "2s"}), ShouldEqual, 1)
		})
	})
}

package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given documentation routes on a mux", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("GET /api-docs serves the ReDoc page", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/html")
			So(rec.Body.String(), ShouldContainSubstring, "redoc")
			So(rec.Body.String(), ShouldContainSubstring, "/openapi.yaml")
		})

		Convey("GET /openapi.yaml serves the embedded spec", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/yaml")
			So(rec.Body.Len(), ShouldBeGreaterThan, 0)
			So(strings.HasPrefix(rec.Body.String(), "openapi:"), ShouldBeTrue)
		})

		Convey("The embedded spec documents the core resources", func() {
			body := string(OpenAPI)
			So(body, ShouldContainSubstring, "/suppliers")
			So(body, ShouldContainSubstring, "/events/{id}/recommendations")
			So(body, ShouldContainSubstring, "/offers/{id}/payment")
			So(body, ShouldContainSubstring, "/verifications/{id}/review")
			So(body, ShouldContainSubstring, "/analytics")
		})
	})

	Convey("Registering on a nil mux panics", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}

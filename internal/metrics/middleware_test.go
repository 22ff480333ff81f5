package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(HTTPMetrics())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(scrapePath, func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "200"))
	beforeScrape := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, scrapePath, "200"))
	beforeMissing := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))

	for _, path := range []string{"/ping/1", "/ping/2", scrapePath, "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "200")) - before; got != 2 {
		t.Errorf("route counter delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, scrapePath, "200")) - beforeScrape; got != 0 {
		t.Errorf("scrape counter delta = %v, want 0", got)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")) - beforeMissing; got != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", got)
	}
}

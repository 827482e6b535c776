package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesCollectors(t *testing.T) {
	NetworksBuiltTotal.Inc()
	ConsistencyFaultsTotal.WithLabelValues("route").Inc()
	RouteHops.Observe(3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"mabravo_networks_built_total",
		`mabravo_consistency_faults_total{op="route"}`,
		"mabravo_route_hops_bucket",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output misses %q", want)
		}
	}
}

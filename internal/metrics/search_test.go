package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	SearchRequestsTotal.WithLabelValues("search", "ok").Inc()
	if v := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("search", "ok")); v < 1 {
		t.Errorf("search_requests_total = %f", v)
	}
	CatalogRecords.WithLabelValues("embedded").Set(57)
	if v := testutil.ToFloat64(CatalogRecords.WithLabelValues("embedded")); v != 57 {
		t.Errorf("catalog_records = %f", v)
	}
}

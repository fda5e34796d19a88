package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/api/predict_home_price", http.MethodPost, http.StatusOK, 2*time.Millisecond)
	m.ObservePrediction(OutcomeOK, 81.5)
	m.ObservePrediction(OutcomeInvalidInput, 0)
	m.ObserveUnknownLocation()

	if got := testutil.ToFloat64(m.predictionsTotal.WithLabelValues(OutcomeOK)); got != 1 {
		t.Fatalf("expected 1 ok prediction, got %v", got)
	}
	if got := testutil.ToFloat64(m.unknownLocations); got != 1 {
		t.Fatalf("expected 1 unknown location, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/predict_home_price", "POST", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveArtifactChange("/srv/model.json")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `homeprice_artifact_changes_total{path="/srv/model.json"} 1`) {
		t.Fatalf("artifact change counter missing from output:\n%s", w.Body.String())
	}
}

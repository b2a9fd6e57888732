package testutil

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/preston-bernstein/nba-league-service/internal/metrics"
)

// NewCollectingRecorder returns a recorder backed by a manual OpenTelemetry reader
// and a collect func reporting the names of every metric exported so far.
func NewCollectingRecorder(t testing.TB) (*metrics.Recorder, func() map[string]bool) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := metrics.NewRecorderWithProvider(provider)
	if err != nil {
		t.Fatalf("failed to build recorder: %v", err)
	}

	collect := func() map[string]bool {
		var rm metricdata.ResourceMetrics
		if err := reader.Collect(context.Background(), &rm); err != nil {
			t.Fatalf("failed to collect metrics: %v", err)
		}
		seen := make(map[string]bool)
		for _, scope := range rm.ScopeMetrics {
			for _, m := range scope.Metrics {
				seen[m.Name] = true
			}
		}
		return seen
	}
	return rec, collect
}

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "nba-league-service"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

// NewRecorderWithProvider returns a recorder whose instruments live on provider.
func NewRecorderWithProvider(provider metric.MeterProvider) (*Recorder, error) {
	inst, err := instrumentFactory(provider)
	if err != nil {
		return nil, err
	}
	return newRecorder(inst), nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx                context.Context
	meter              metric.Meter
	requests           metric.Int64Counter
	requestLatencyMs   metric.Float64Histogram
	operations         metric.Int64Counter
	operationErrors    metric.Int64Counter
	operationLatencyMs metric.Float64Histogram
	snapshotSaves      metric.Int64Counter
	snapshotErrors     metric.Int64Counter
	snapshotLatencyMs  metric.Float64Histogram
	consistencyIssues  metric.Int64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}

	operations, err := meter.Int64Counter("league_operations_total")
	if err != nil {
		return nil, err
	}
	operationErrors, err := meter.Int64Counter("league_operation_errors_total")
	if err != nil {
		return nil, err
	}
	operationLatency, err := meter.Float64Histogram("league_operation_duration_ms")
	if err != nil {
		return nil, err
	}
	snapshotSaves, err := meter.Int64Counter("snapshot_saves_total")
	if err != nil {
		return nil, err
	}
	snapshotErrors, err := meter.Int64Counter("snapshot_errors_total")
	if err != nil {
		return nil, err
	}
	snapshotLatency, err := meter.Float64Histogram("snapshot_duration_ms")
	if err != nil {
		return nil, err
	}
	issues, err := meter.Int64Histogram("consistency_issues")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:                ctx,
		meter:              meter,
		requests:           requests,
		requestLatencyMs:   requestLatency,
		operations:         operations,
		operationErrors:    operationErrors,
		operationLatencyMs: operationLatency,
		snapshotSaves:      snapshotSaves,
		snapshotErrors:     snapshotErrors,
		snapshotLatencyMs:  snapshotLatency,
		consistencyIssues:  issues,
	}, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordOperation(operation string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOperation, operation)}
	o.recordCounter(o.operations, 1, attrs...)
	o.recordHistogram(o.operationLatencyMs, float64(duration.Microseconds())/1000, attrs...)
	if err != nil {
		o.recordCounter(o.operationErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordSnapshot(backend string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrBackend, backend)}
	o.recordCounter(o.snapshotSaves, 1, attrs...)
	o.recordHistogram(o.snapshotLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.snapshotErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordIssues(count int) {
	if o == nil {
		return
	}
	o.consistencyIssues.Record(o.ctx, int64(count))
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}

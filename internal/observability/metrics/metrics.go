package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes appraisal instruments.
type Metrics struct {
	appraisals           metric.Int64Counter
	validationRejections metric.Int64Counter
	pawnQuotes           metric.Int64Counter
	appraisedValue       metric.Float64Histogram
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the appraisal instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "pawnshop"
	}
	meter := provider.Meter(name)

	appraisals, err := meter.Int64Counter("pawnshop_appraisals_total")
	if err != nil {
		return nil, err
	}
	validationRejections, err := meter.Int64Counter("pawnshop_validation_rejections_total")
	if err != nil {
		return nil, err
	}
	pawnQuotes, err := meter.Int64Counter("pawnshop_pawn_quotes_total")
	if err != nil {
		return nil, err
	}
	appraisedValue, err := meter.Float64Histogram("pawnshop_appraised_value",
		metric.WithDescription("Pawn estimate of finished line items"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		appraisals:           appraisals,
		validationRejections: validationRejections,
		pawnQuotes:           pawnQuotes,
		appraisedValue:       appraisedValue,
	}, nil
}

// RecordAppraisal counts an estimate of the given kind (metal, gem, line_item).
func (m *Metrics) RecordAppraisal(ctx context.Context, kind, metalType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("kind", strings.TrimSpace(kind)),
		attribute.String("metal_type", strings.TrimSpace(metalType)),
	)
	m.appraisals.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLineItemValue records the pawn estimate of a finished line item.
func (m *Metrics) RecordLineItemValue(ctx context.Context, pawnValue float64) {
	if m == nil {
		return
	}
	m.appraisedValue.Record(ctx, pawnValue)
}

// RecordValidationRejection counts a rejected edit or request.
func (m *Metrics) RecordValidationRejection(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.validationRejections.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPawnQuote counts a computed pawn ticket quote.
func (m *Metrics) RecordPawnQuote(ctx context.Context) {
	if m == nil {
		return
	}
	m.pawnQuotes.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"kind":       {},
	"metal_type": {},
	"reason":     {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

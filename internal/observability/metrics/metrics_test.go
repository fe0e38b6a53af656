package metrics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("kind", "metal"),
		attribute.String("line_item_id", "456"),
		attribute.String("reason", "primary_gem_exists"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "kind" && attrs[1].Key != "kind" {
		t.Fatalf("expected kind to be retained")
	}
	if attrs[0].Key != "reason" && attrs[1].Key != "reason" {
		t.Fatalf("expected reason to be retained")
	}
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	m.RecordAppraisal(ctx, "metal", "gold")
	m.RecordLineItemValue(ctx, 310)
	m.RecordValidationRejection(ctx, "primary_gem_exists")
	m.RecordPawnQuote(ctx)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordAppraisal(context.Background(), "gem", "")
	m.RecordPawnQuote(context.Background())
}

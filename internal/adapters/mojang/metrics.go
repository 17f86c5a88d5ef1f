package mojang

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type mojangMetricsCollection struct {
	requestCount metric.Int64Counter
	cacheCount   metric.Int64Counter
}

func setupMojangMetrics(meter metric.Meter) (mojangMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("mojang/request_count")
	if err != nil {
		return mojangMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	cacheCount, err := meter.Int64Counter("mojang/cache_count")
	if err != nil {
		return mojangMetricsCollection{}, fmt.Errorf("failed to create cache count metric: %w", err)
	}

	return mojangMetricsCollection{
		requestCount: requestCount,
		cacheCount:   cacheCount,
	}, nil
}

func (m mojangMetricsCollection) recordRequest(ctx context.Context, operation string, status string) {
	m.requestCount.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status_code", status),
		),
	)
}

func (m mojangMetricsCollection) recordCache(ctx context.Context, cacheName string, created bool, err error) {
	result := "hit"
	if err != nil {
		result = "error"
	} else if created {
		result = "miss"
	}

	m.cacheCount.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String("cache", cacheName),
			attribute.String("result", result),
		),
	)
}

package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for the search service.
var Metrics *SearchServiceMetrics

// SearchServiceMetrics contains all metric instruments.
type SearchServiceMetrics struct {
	IndexedTotal   metric.Int64Counter
	DeletedTotal   metric.Int64Counter
	ErrorsTotal    metric.Int64Counter
	SearchDuration metric.Float64Histogram
	SyncDuration   metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("search-service")

	indexedTotal, err := meter.Int64Counter("search_service_indexed_total",
		metric.WithDescription("Total number of services indexed"),
	)
	if err != nil {
		return err
	}

	deletedTotal, err := meter.Int64Counter("search_service_deleted_total",
		metric.WithDescription("Total number of services deleted from index"),
	)
	if err != nil {
		return err
	}

	errorsTotal, err := meter.Int64Counter("search_service_errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("search_service_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	syncDuration, err := meter.Float64Histogram("search_service_synonym_sync_duration_seconds",
		metric.WithDescription("Synonym synchronization duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &SearchServiceMetrics{
		IndexedTotal:   indexedTotal,
		DeletedTotal:   deletedTotal,
		ErrorsTotal:    errorsTotal,
		SearchDuration: searchDuration,
		SyncDuration:   syncDuration,
	}

	return nil
}

package providers

import (
	"healthdata/internal/model"
)

// Provider supplies values for a fixed set of metrics.
type Provider interface {
	ID() model.ProviderID
	ProvidesMetrics() []model.MetricID
	// CanHandleAllMetrics reports whether the provider alone can answer
	// every metric in the query.
	CanHandleAllMetrics(metricIDs []model.MetricID) bool
}

// Base holds the identity and declared metrics shared by every provider.
type Base struct {
	id      model.ProviderID
	metrics []model.MetricID
	set     map[model.MetricID]struct{}
}

func NewBase(id model.ProviderID, metrics ...model.MetricID) Base {
	set := make(map[model.MetricID]struct{}, len(metrics))
	for _, metric := range metrics {
		set[metric] = struct{}{}
	}
	return Base{
		id:      id,
		metrics: append([]model.MetricID(nil), metrics...),
		set:     set,
	}
}

func (b Base) ID() model.ProviderID {
	return b.id
}

func (b Base) ProvidesMetrics() []model.MetricID {
	return append([]model.MetricID(nil), b.metrics...)
}

func (b Base) Provides(metricID model.MetricID) bool {
	_, ok := b.set[metricID]
	return ok
}

func (b Base) CanHandleAllMetrics(metricIDs []model.MetricID) bool {
	for _, metricID := range metricIDs {
		if !b.Provides(metricID) {
			return false
		}
	}
	return true
}

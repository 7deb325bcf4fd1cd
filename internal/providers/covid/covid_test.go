package covid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthdata/internal/model"
	"healthdata/internal/providers/acs"
)

func TestProvider_CanHandleAllMetrics(t *testing.T) {
	p := New(acs.New())

	tests := []struct {
		name    string
		metrics []model.MetricID
		want    bool
	}{
		{name: "own metrics", metrics: []model.MetricID{model.MetricCovidCases, model.MetricCovidHospPer100k}, want: true},
		{name: "with population", metrics: []model.MetricID{model.MetricCovidCases, model.MetricPopulation}, want: true},
		{name: "population only", metrics: []model.MetricID{model.MetricPopulationPct}, want: true},
		{name: "with brfss", metrics: []model.MetricID{model.MetricCovidCases, model.MetricDiabetesCount}, want: false},
		{name: "unknown", metrics: []model.MetricID{"unknown"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanHandleAllMetrics(tt.metrics))
		})
	}
}

func TestProvider_WithoutPopulation(t *testing.T) {
	p := New(nil)

	assert.True(t, p.CanHandleAllMetrics([]model.MetricID{model.MetricCovidDeaths}))
	assert.False(t, p.CanHandleAllMetrics([]model.MetricID{model.MetricCovidDeaths, model.MetricPopulation}))
}

func TestProvider_DoesNotDeclarePopulation(t *testing.T) {
	p := New(acs.New())

	assert.Equal(t, model.ProviderCovid, p.ID())
	assert.NotContains(t, p.ProvidesMetrics(), model.MetricPopulation)
	assert.NotContains(t, p.ProvidesMetrics(), model.MetricPopulationPct)
}

package covid

import (
	"healthdata/internal/model"
	"healthdata/internal/providers"
)

// Provider serves COVID case, death and hospitalization metrics. Rates are
// computed against the population provider it was built with, so queries that
// mix COVID and population metrics can be answered here alone.
type Provider struct {
	providers.Base
	population providers.Provider
}

func New(population providers.Provider) *Provider {
	return &Provider{
		Base: providers.NewBase(model.ProviderCovid,
			model.MetricCovidCases,
			model.MetricCovidDeaths,
			model.MetricCovidHosp,
			model.MetricCovidCasesPctOfGeo,
			model.MetricCovidDeathsPctOfGeo,
			model.MetricCovidHospPctOfGeo,
			model.MetricCovidCasesPer100k,
			model.MetricCovidDeathsPer100k,
			model.MetricCovidHospPer100k,
		),
		population: population,
	}
}

func (p *Provider) CanHandleAllMetrics(metricIDs []model.MetricID) bool {
	for _, metricID := range metricIDs {
		if p.Provides(metricID) {
			continue
		}
		if p.population == nil || !p.population.CanHandleAllMetrics([]model.MetricID{metricID}) {
			return false
		}
	}
	return true
}

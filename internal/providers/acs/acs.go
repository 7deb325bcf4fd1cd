package acs

import (
	"healthdata/internal/model"
	"healthdata/internal/providers"
)

// Provider serves American Community Survey population estimates.
type Provider struct {
	providers.Base
}

func New() *Provider {
	return &Provider{
		Base: providers.NewBase(model.ProviderAcsPopulation,
			model.MetricPopulation,
			model.MetricPopulationPct,
		),
	}
}

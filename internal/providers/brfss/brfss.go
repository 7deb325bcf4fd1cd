package brfss

import (
	"healthdata/internal/model"
	"healthdata/internal/providers"
)

// Provider serves Behavioral Risk Factor Surveillance System prevalence metrics.
type Provider struct {
	providers.Base
}

func New() *Provider {
	return &Provider{
		Base: providers.NewBase(model.ProviderBrfss,
			model.MetricDiabetesCount,
			model.MetricDiabetesPer100k,
			model.MetricCopdCount,
			model.MetricCopdPer100k,
		),
	}
}

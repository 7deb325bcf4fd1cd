package catalog

import (
	"healthdata/internal/providers"
	"healthdata/internal/providers/acs"
	"healthdata/internal/providers/brfss"
	"healthdata/internal/providers/covid"
	"healthdata/internal/resolver"
)

// Default returns the production provider list. Order matters: the population
// provider is built first so the COVID provider can depend on it.
func Default() []providers.Provider {
	population := acs.New()
	return []providers.Provider{
		population,
		covid.New(population),
		brfss.New(),
	}
}

func NewResolver() (*resolver.Resolver, error) {
	return resolver.New(Default())
}

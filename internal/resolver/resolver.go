package resolver

import (
	"fmt"
	"sort"
	"strings"

	"healthdata/internal/model"
	"healthdata/internal/providers"
)

// maxJoinProviders bounds how many providers a single query may merge. Beyond
// two, providers sharing secondary metrics make the merged result depend on
// join order.
const maxJoinProviders = 2

// Resolver maps requested metrics to the providers that must be invoked for
// them. It is immutable after New and safe for concurrent use.
type Resolver struct {
	providers     []providers.Provider
	providersByID map[model.ProviderID]providers.Provider
	authoritative map[model.MetricID]model.ProviderID
}

// Plan describes how a query was resolved.
type Plan struct {
	Metrics    []model.MetricID
	Candidates []providers.Provider
	Providers  []providers.Provider
	// SingleProvider is set when one candidate could answer the whole query
	// and the other candidate was dropped.
	SingleProvider bool
}

func New(list []providers.Provider) (*Resolver, error) {
	r := &Resolver{
		providers:     make([]providers.Provider, 0, len(list)),
		providersByID: make(map[model.ProviderID]providers.Provider, len(list)),
		authoritative: make(map[model.MetricID]model.ProviderID),
	}

	for i, provider := range list {
		if provider == nil {
			return nil, fmt.Errorf("%w: provider at index %d is nil", ErrInvalidProvider, i)
		}
		id := provider.ID()
		if strings.TrimSpace(string(id)) == "" {
			return nil, fmt.Errorf("%w: provider at index %d has an empty id", ErrInvalidProvider, i)
		}
		if _, exists := r.providersByID[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProvider, id)
		}
		r.providersByID[id] = provider
		r.providers = append(r.providers, provider)

		for _, metricID := range provider.ProvidesMetrics() {
			if owner, exists := r.authoritative[metricID]; exists && owner != id {
				return nil, fmt.Errorf("%w: %q is declared by %q and %q", ErrDuplicateMetric, metricID, owner, id)
			}
			r.authoritative[metricID] = id
		}
	}

	return r, nil
}

// UniqueProviders returns the providers required to answer metricIDs. A single
// provider is returned when it can handle the whole query; otherwise the caller
// must consult and merge every returned provider.
func (r *Resolver) UniqueProviders(metricIDs []model.MetricID) ([]providers.Provider, error) {
	plan, err := r.Plan(metricIDs)
	if err != nil {
		return nil, err
	}
	return plan.Providers, nil
}

func (r *Resolver) Plan(metricIDs []model.MetricID) (Plan, error) {
	var unknown []string
	seen := make(map[model.ProviderID]struct{}, maxJoinProviders)
	candidates := make([]providers.Provider, 0, maxJoinProviders)
	for _, metricID := range metricIDs {
		id, ok := r.authoritative[metricID]
		if !ok {
			unknown = append(unknown, string(metricID))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, r.providersByID[id])
	}

	if len(unknown) > 0 {
		return Plan{}, fmt.Errorf("%w: unknown metrics %s", ErrNoProviderFound, strings.Join(unknown, ","))
	}
	if len(candidates) == 0 {
		return Plan{}, ErrNoProviderFound
	}
	if len(candidates) > maxJoinProviders {
		return Plan{}, fmt.Errorf("%w: query needs %d providers (%s)",
			ErrUnsupportedJoinCardinality, len(candidates), joinIDs(candidates))
	}

	plan := Plan{
		Metrics:    append([]model.MetricID(nil), metricIDs...),
		Candidates: candidates,
		Providers:  append([]providers.Provider(nil), candidates...),
	}
	for _, provider := range candidates {
		if provider.CanHandleAllMetrics(metricIDs) {
			plan.Providers = []providers.Provider{provider}
			plan.SingleProvider = len(candidates) > 1
			break
		}
	}
	return plan, nil
}

// Providers returns every configured provider in construction order.
func (r *Resolver) Providers() []providers.Provider {
	return append([]providers.Provider(nil), r.providers...)
}

func (r *Resolver) Provider(id model.ProviderID) (providers.Provider, bool) {
	provider, ok := r.providersByID[id]
	return provider, ok
}

func (r *Resolver) AuthoritativeProvider(metricID model.MetricID) (model.ProviderID, bool) {
	id, ok := r.authoritative[metricID]
	return id, ok
}

// Metrics returns every known metric id, sorted.
func (r *Resolver) Metrics() []model.MetricID {
	metrics := make([]model.MetricID, 0, len(r.authoritative))
	for metricID := range r.authoritative {
		metrics = append(metrics, metricID)
	}
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i] < metrics[j]
	})
	return metrics
}

func ProviderIDs(list []providers.Provider) []model.ProviderID {
	ids := make([]model.ProviderID, 0, len(list))
	for _, provider := range list {
		ids = append(ids, provider.ID())
	}
	return ids
}

func joinIDs(list []providers.Provider) string {
	parts := make([]string, 0, len(list))
	for _, provider := range list {
		parts = append(parts, string(provider.ID()))
	}
	return strings.Join(parts, ",")
}

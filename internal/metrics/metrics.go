package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder observes provider resolutions.
type Recorder interface {
	ObserveResolution(outcome string, providers int, singleProvider bool)
}

type Noop struct{}

func (Noop) ObserveResolution(string, int, bool) {}

type Prom struct {
	reg *prometheus.Registry

	Resolutions       *prometheus.CounterVec
	SingleProvider    prometheus.Counter
	ResolvedProviders prometheus.Histogram
}

func NewProm() *Prom {
	reg := prometheus.NewRegistry()
	p := &Prom{
		reg: reg,
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "providermap_resolutions_total",
			Help: "Provider resolutions by outcome",
		}, []string{"outcome"}),
		SingleProvider: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "providermap_single_provider_total",
			Help: "Resolutions collapsed to one provider that handles the whole query",
		}),
		ResolvedProviders: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "providermap_resolved_providers",
			Help:    "Number of providers returned per successful resolution",
			Buckets: []float64{1, 2},
		}),
	}
	reg.MustRegister(p.Resolutions, p.SingleProvider, p.ResolvedProviders)
	return p
}

func (p *Prom) Handler() http.Handler { return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{}) }

func (p *Prom) ObserveResolution(outcome string, providers int, singleProvider bool) {
	p.Resolutions.WithLabelValues(outcome).Inc()
	if providers > 0 {
		p.ResolvedProviders.Observe(float64(providers))
	}
	if singleProvider {
		p.SingleProvider.Inc()
	}
}

package dispatch

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"healthdata/internal/metrics"
	"healthdata/internal/model"
	"healthdata/internal/resolver"
	"healthdata/internal/store"
)

// Service runs provider resolutions for the CLI and HTTP API, recording each
// one in the metrics recorder and the audit store.
type Service struct {
	resolver *resolver.Resolver
	store    store.Store
	recorder metrics.Recorder
	now      func() time.Time
}

func New(r *resolver.Resolver, st store.Store, recorder metrics.Recorder) *Service {
	if st == nil {
		st = &store.NopStore{}
	}
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &Service{
		resolver: r,
		store:    st,
		recorder: recorder,
		now:      time.Now,
	}
}

func (s *Service) Resolver() *resolver.Resolver {
	return s.resolver
}

// Resolve plans metricIDs and returns the resolver's error unchanged on
// failure. Audit write failures are logged and never fail the query.
func (s *Service) Resolve(ctx context.Context, metricIDs []model.MetricID) (resolver.Plan, error) {
	plan, err := s.resolver.Plan(metricIDs)
	outcome := Classify(err)

	resolution := model.Resolution{
		Metrics:    append([]model.MetricID(nil), metricIDs...),
		Outcome:    outcome,
		ResolvedAt: s.now(),
	}
	if err != nil {
		resolution.Error = err.Error()
	} else {
		resolution.Candidates = resolver.ProviderIDs(plan.Candidates)
		resolution.Providers = resolver.ProviderIDs(plan.Providers)
	}

	s.recorder.ObserveResolution(string(outcome), len(plan.Providers), plan.SingleProvider)
	if recordErr := s.store.RecordResolution(ctx, resolution); recordErr != nil {
		log.WithError(recordErr).WithField("outcome", outcome).Warn("failed to record resolution")
	}

	if err != nil {
		return resolver.Plan{}, err
	}
	return plan, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]model.Resolution, error) {
	return s.store.ListResolutions(ctx, limit)
}

func Classify(err error) model.Outcome {
	switch {
	case err == nil:
		return model.OutcomeResolved
	case errors.Is(err, resolver.ErrNoProviderFound):
		return model.OutcomeNoProvider
	case errors.Is(err, resolver.ErrUnsupportedJoinCardinality):
		return model.OutcomeUnsupportedJoin
	default:
		return model.OutcomeFailed
	}
}

package resolver

import "errors"

var (
	ErrNoProviderFound            = errors.New("resolver: no provider found for the requested metrics")
	ErrUnsupportedJoinCardinality = errors.New("resolver: joining data from more than two providers is not supported")

	ErrInvalidProvider   = errors.New("resolver: invalid provider")
	ErrDuplicateProvider = errors.New("resolver: duplicate provider id")
	ErrDuplicateMetric   = errors.New("resolver: metric declared by more than one provider")
)

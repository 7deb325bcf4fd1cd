package store

import (
	"context"

	"healthdata/internal/model"
)

type Store interface {
	RecordResolution(ctx context.Context, resolution model.Resolution) error
	ListResolutions(ctx context.Context, limit int) ([]model.Resolution, error)
	Close() error
}

type NopStore struct{}

func (s *NopStore) RecordResolution(ctx context.Context, resolution model.Resolution) error {
	_ = ctx
	_ = resolution
	return nil
}

func (s *NopStore) ListResolutions(ctx context.Context, limit int) ([]model.Resolution, error) {
	_ = ctx
	_ = limit
	return nil, nil
}

func (s *NopStore) Close() error {
	return nil
}

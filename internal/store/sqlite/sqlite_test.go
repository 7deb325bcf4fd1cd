package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthdata/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "audit", "providermap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestRecordAndListResolutions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	resolved := model.Resolution{
		ID:         "res-1",
		Metrics:    []model.MetricID{model.MetricCovidCases, model.MetricPopulation},
		Candidates: []model.ProviderID{model.ProviderCovid, model.ProviderAcsPopulation},
		Providers:  []model.ProviderID{model.ProviderCovid},
		Outcome:    model.OutcomeResolved,
		ResolvedAt: base,
	}
	failed := model.Resolution{
		ID:         "res-2",
		Metrics:    []model.MetricID{"unknown"},
		Outcome:    model.OutcomeNoProvider,
		Error:      "resolver: no provider found for the requested metrics",
		ResolvedAt: base.Add(500 * time.Millisecond),
	}
	require.NoError(t, st.RecordResolution(ctx, resolved))
	require.NoError(t, st.RecordResolution(ctx, failed))

	got, err := st.ListResolutions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest first
	assert.Equal(t, "res-2", got[0].ID)
	assert.Equal(t, model.OutcomeNoProvider, got[0].Outcome)
	assert.Equal(t, failed.Error, got[0].Error)
	assert.Nil(t, got[0].Providers)
	assert.True(t, failed.ResolvedAt.Equal(got[0].ResolvedAt))

	assert.Equal(t, resolved.Metrics, got[1].Metrics)
	assert.Equal(t, resolved.Candidates, got[1].Candidates)
	assert.Equal(t, resolved.Providers, got[1].Providers)
	assert.Empty(t, got[1].Error)
	assert.True(t, base.Equal(got[1].ResolvedAt))
}

func TestRecordResolution_AssignsIDAndTime(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordResolution(ctx, model.Resolution{
		Metrics:   []model.MetricID{model.MetricPopulation},
		Providers: []model.ProviderID{model.ProviderAcsPopulation},
		Outcome:   model.OutcomeResolved,
	}))

	got, err := st.ListResolutions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].ResolvedAt.IsZero())
}

func TestListResolutions_Limit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, st.RecordResolution(ctx, model.Resolution{
			Metrics:    []model.MetricID{model.MetricPopulation},
			Outcome:    model.OutcomeResolved,
			ResolvedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := st.ListResolutions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, base.Add(4*time.Second).Equal(got[0].ResolvedAt))
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providermap.db")
	ctx := context.Background()

	st, err := New(path)
	require.NoError(t, err)
	require.NoError(t, st.RecordResolution(ctx, model.Resolution{ID: "keep", Outcome: model.OutcomeResolved}))
	require.NoError(t, st.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.ListResolutions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}

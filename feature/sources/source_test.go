package sources

import (
	"context"
	"testing"
	"time"

	"econfeed/core/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	name string
	max  int
}

func (s *stubAdapter) Name() string        { return s.name }
func (s *stubAdapter) Configured() bool    { return true }
func (s *stubAdapter) MaxIDsPerCall() int  { return s.max }
func (s *stubAdapter) Catalog() Catalog    { return Catalog{Source: s.name} }
func (s *stubAdapter) FetchSeries(ctx context.Context, ids []string, q Query) ([]DataPoint, error) {
	return nil, nil
}

func TestCheckBatch(t *testing.T) {
	a := &stubAdapter{name: "stub", max: 2}

	assert.NoError(t, CheckBatch(a, []string{"a", "b"}))

	var verr *errs.ValidationError
	require.ErrorAs(t, CheckBatch(a, []string{"a", "b", "c"}), &verr)
	require.ErrorAs(t, CheckBatch(a, nil), &verr)
}

func TestQueryNormalize(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	q := Query{}.Normalize(now)
	assert.Equal(t, 2025, q.EndYear)
	assert.Equal(t, 2020, q.StartYear)

	q = Query{StartYear: 2030, EndYear: 2024}.Normalize(now)
	assert.Equal(t, 2024, q.StartYear, "inverted bounds collapse to the end year")

	q = Query{StartYear: 2010, EndYear: 2012}.Normalize(now)
	assert.Equal(t, 2010, q.StartYear)
	assert.Equal(t, 2012, q.EndYear)
}

func TestThrottle_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Throttle(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, Throttle(context.Background(), 0))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "fred", max: 10})
	r.Register(&stubAdapter{name: "bls", max: 50})

	a, ok := r.Get("fred")
	require.True(t, ok)
	assert.Equal(t, "fred", a.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"bls", "fred"}, r.Names())
}

package bls

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"econfeed/core/errs"
	"econfeed/core/fetch"
	"econfeed/feature/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter(baseURL string) *Adapter {
	a := New(sources.Config{BLSKey: "test-key", BLSBaseURL: baseURL})
	a.retry = fetch.Config{MaxRetries: 3, BaseDelay: 1}
	return a
}

func successBody() string {
	return `{
		"status": "REQUEST_SUCCEEDED",
		"Results": {
			"series": [{
				"seriesID": "CUUR0000SA0",
				"data": [
					{"year": "2024", "period": "M01", "value": "308.417"},
					{"year": "2023", "period": "Q04", "value": "307.051"},
					{"year": "2023", "period": "A01", "value": "304.702"}
				]
			}]
		}
	}`
}

func TestFetchSeries_NormalizesPeriods(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req["registrationkey"])
		_, _ = w.Write([]byte(successBody()))
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	points, err := a.FetchSeries(context.Background(), []string{"CUUR0000SA0"}, sources.Query{})

	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01-01", points[0].IsoDate)
	assert.Equal(t, "Jan 2024", points[0].PeriodLabel)
	assert.Equal(t, "2023-10-01", points[1].IsoDate)
	assert.Equal(t, "Q4 2023", points[1].PeriodLabel)
	assert.Equal(t, "2023-01-01", points[2].IsoDate)
	assert.Equal(t, "2023", points[2].PeriodLabel)

	assert.Equal(t, "CPI - All Urban Consumers", points[0].NameHint)
	assert.Equal(t, "US", points[0].CountryCode)
}

func TestFetchSeries_CapExceededBeforeNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	ids := make([]string, 51)
	for i := range ids {
		ids[i] = "S" + string(rune('A'+i%26))
	}

	_, err := a.FetchSeries(context.Background(), ids, sources.Query{})

	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, int32(0), calls, "cap check must fail before any network call")
}

func TestFetchSeries_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(successBody()))
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	points, err := a.FetchSeries(context.Background(), []string{"CUUR0000SA0"}, sources.Query{})

	require.NoError(t, err)
	assert.Len(t, points, 3)
	assert.Equal(t, int32(4), calls)
}

func TestFetchSeries_ExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	_, err := a.FetchSeries(context.Background(), []string{"CUUR0000SA0"}, sources.Query{})

	var exhausted *errs.ExhaustedRetriesError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, int32(4), calls, "max_retries+1 attempts")
}

func TestFetchSeries_ProviderLevelFailureIsValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_NOT_PROCESSED", "message": ["invalid key"]}`))
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	_, err := a.FetchSeries(context.Background(), []string{"CUUR0000SA0"}, sources.Query{})

	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestFetchSeries_MalformedObservationRejectsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {"series": [{"seriesID": "X", "data": [{"year": "2024", "period": "M01", "value": "n/a"}]}]}
		}`))
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	_, err := a.FetchSeries(context.Background(), []string{"X"}, sources.Query{})

	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Reason, "non-numeric")
}

func TestFetchSeries_NotConfigured(t *testing.T) {
	a := New(sources.Config{})
	_, err := a.FetchSeries(context.Background(), []string{"CUUR0000SA0"}, sources.Query{})

	var confErr *errs.ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}

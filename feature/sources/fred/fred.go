// Package fred adapts the federal-reserve-style observations API to the
// canonical DataPoint model. The provider serves one series per request, so
// multi-series fetches are serialized with the configured inter-request
// delay.
package fred

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"econfeed/core/errs"
	"econfeed/core/fetch"
	"econfeed/feature/sources"
)

const (
	sourceName    = "fred"
	displayName   = "Federal Reserve Economic Data"
	maxIDsPerCall = 10
)

// Adapter implements sources.Adapter for the federal reserve data API.
type Adapter struct {
	cfg    sources.Config
	client *http.Client
	retry  fetch.Config
	table  map[string]seriesInfo
	order  []string
}

type seriesInfo struct {
	entry sources.CatalogEntry
	unit  string
}

// New builds the adapter with its static series table.
func New(cfg sources.Config) *Adapter {
	a := &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		retry:  fetch.DefaultConfig(),
		table:  make(map[string]seriesInfo),
	}

	for _, s := range []seriesInfo{
		{entry: sources.CatalogEntry{ID: "GDP", Name: "Gross Domestic Product", CountryCode: "US", Category: "growth"}, unit: "USD bn"},
		{entry: sources.CatalogEntry{ID: "UNRATE", Name: "Unemployment Rate", CountryCode: "US", Category: "labor"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "CPIAUCSL", Name: "Consumer Price Index", CountryCode: "US", Category: "prices"}, unit: "index"},
		{entry: sources.CatalogEntry{ID: "FEDFUNDS", Name: "Federal Funds Rate", CountryCode: "US", Category: "rates"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "DGS10", Name: "10-Year Treasury Yield", CountryCode: "US", Category: "rates"}, unit: "%"},
	} {
		a.table[s.entry.ID] = s
		a.order = append(a.order, s.entry.ID)
	}

	return a
}

func (a *Adapter) Name() string { return sourceName }

func (a *Adapter) Configured() bool { return a.cfg.FREDKey != "" }

func (a *Adapter) MaxIDsPerCall() int { return maxIDsPerCall }

func (a *Adapter) Catalog() sources.Catalog {
	cat := sources.Catalog{Source: sourceName, Configured: a.Configured()}
	for _, id := range a.order {
		cat.Entries = append(cat.Entries, a.table[id].entry)
	}
	return cat
}

// FetchSeries fetches the requested series one request at a time, pausing
// the configured delay between requests.
func (a *Adapter) FetchSeries(ctx context.Context, ids []string, q sources.Query) ([]sources.DataPoint, error) {
	if err := sources.CheckBatch(a, ids); err != nil {
		return nil, err
	}
	if !a.Configured() {
		return nil, &errs.ConfigurationError{Source: sourceName, Reason: "API key not configured"}
	}

	points := make([]sources.DataPoint, 0, 64)
	for i, id := range ids {
		if i > 0 {
			if err := sources.Throttle(ctx, a.cfg.Delay()); err != nil {
				return nil, err
			}
		}

		resp, err := a.fetchOne(ctx, id, q)
		if err != nil {
			return nil, err
		}

		mapped, err := a.toDataPoints(id, resp)
		if err != nil {
			return nil, err
		}
		points = append(points, mapped...)
	}

	return points, nil
}

func (a *Adapter) fetchOne(ctx context.Context, id string, q sources.Query) (*observationsResponse, error) {
	params := url.Values{}
	params.Set("series_id", id)
	params.Set("api_key", a.cfg.FREDKey)
	params.Set("file_type", "json")
	if q.StartYear > 0 {
		params.Set("observation_start", fmt.Sprintf("%d-01-01", q.StartYear))
	}
	if q.EndYear > 0 {
		params.Set("observation_end", fmt.Sprintf("%d-12-31", q.EndYear))
	}

	u := fmt.Sprintf("%s/series/observations?%s", a.cfg.FREDBaseURL, params.Encode())

	var resp observationsResponse
	err := fetch.Do(ctx, sourceName, a.retry, func(ctx context.Context) error {
		resp = observationsResponse{}
		return fetch.GetJSON(ctx, a.client, sourceName, u, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

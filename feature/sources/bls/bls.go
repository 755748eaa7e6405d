// Package bls adapts the US labor statistics API (BLS-style v2 JSON API)
// to the canonical DataPoint model.
package bls

import (
	"context"
	"net/http"
	"strconv"

	"econfeed/core/errs"
	"econfeed/core/fetch"
	"econfeed/feature/sources"
)

const (
	sourceName    = "bls"
	displayName   = "U.S. Bureau of Labor Statistics"
	maxIDsPerCall = 50
)

// Adapter implements sources.Adapter for the labor statistics API.
type Adapter struct {
	cfg    sources.Config
	client *http.Client
	retry  fetch.Config
	table  map[string]sources.CatalogEntry
	order  []string
}

// New builds the adapter with its static series table.
func New(cfg sources.Config) *Adapter {
	a := &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		retry:  fetch.DefaultConfig(),
		table:  make(map[string]sources.CatalogEntry),
	}

	for _, e := range []sources.CatalogEntry{
		{ID: "CUUR0000SA0", Name: "CPI - All Urban Consumers", CountryCode: "US", Category: "prices"},
		{ID: "LNS14000000", Name: "Unemployment Rate", CountryCode: "US", Category: "labor"},
		{ID: "CES0000000001", Name: "Nonfarm Payrolls", CountryCode: "US", Category: "labor"},
		{ID: "CES0500000003", Name: "Average Hourly Earnings", CountryCode: "US", Category: "labor"},
		{ID: "WPUFD4", Name: "PPI - Final Demand", CountryCode: "US", Category: "prices"},
	} {
		a.table[e.ID] = e
		a.order = append(a.order, e.ID)
	}

	return a
}

func (a *Adapter) Name() string { return sourceName }

func (a *Adapter) Configured() bool { return a.cfg.BLSKey != "" }

func (a *Adapter) MaxIDsPerCall() int { return maxIDsPerCall }

func (a *Adapter) Catalog() sources.Catalog {
	cat := sources.Catalog{Source: sourceName, Configured: a.Configured()}
	for _, id := range a.order {
		cat.Entries = append(cat.Entries, a.table[id])
	}
	return cat
}

// FetchSeries fetches up to MaxIDsPerCall series in one provider call.
func (a *Adapter) FetchSeries(ctx context.Context, ids []string, q sources.Query) ([]sources.DataPoint, error) {
	if err := sources.CheckBatch(a, ids); err != nil {
		return nil, err
	}
	if !a.Configured() {
		return nil, &errs.ConfigurationError{Source: sourceName, Reason: "registration key not configured"}
	}

	body := seriesRequest{
		SeriesID:        ids,
		RegistrationKey: a.cfg.BLSKey,
	}
	if q.StartYear > 0 {
		body.StartYear = strconv.Itoa(q.StartYear)
	}
	if q.EndYear > 0 {
		body.EndYear = strconv.Itoa(q.EndYear)
	}

	url := a.cfg.BLSBaseURL + "/timeseries/data/"

	var resp apiResponse
	err := fetch.Do(ctx, sourceName, a.retry, func(ctx context.Context) error {
		resp = apiResponse{}
		return fetch.PostJSON(ctx, a.client, sourceName, url, body, &resp)
	})
	if err != nil {
		return nil, err
	}

	if resp.Status != "REQUEST_SUCCEEDED" {
		return nil, errs.Validation(sourceName, "request failed: %s %v", resp.Status, resp.Message)
	}

	return a.toDataPoints(resp)
}

func (a *Adapter) entry(id string) sources.CatalogEntry {
	if e, ok := a.table[id]; ok {
		return e
	}
	// Unknown series ids are still accepted; the id doubles as the name.
	return sources.CatalogEntry{ID: id, Name: id, CountryCode: "US", Category: "labor"}
}

// Package worldbank adapts the development indicators API to the canonical
// DataPoint model. One request serves one indicator across many countries;
// multi-indicator fetches are serialized with the configured delay.
package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"econfeed/core/errs"
	"econfeed/core/fetch"
	"econfeed/feature/sources"
)

const (
	sourceName    = "worldbank"
	displayName   = "World Bank"
	maxIDsPerCall = 20
)

var defaultCountries = []string{"US", "DE", "JP", "GB", "BR", "IN", "CN"}

// Adapter implements sources.Adapter for the development indicators API.
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

// New builds the adapter with its static indicator table. The API is
// keyless, so the adapter is always configured.
func New(cfg sources.Config) *Adapter {
	a := &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		retry:  fetch.DefaultConfig(),
		table:  make(map[string]seriesInfo),
	}

	for _, s := range []seriesInfo{
		{entry: sources.CatalogEntry{ID: "NY.GDP.MKTP.CD", Name: "GDP (current US$)", Category: "growth"}, unit: "USD"},
		{entry: sources.CatalogEntry{ID: "FP.CPI.TOTL.ZG", Name: "Inflation, consumer prices", Category: "prices"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "SL.UEM.TOTL.ZS", Name: "Unemployment, total", Category: "labor"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "NE.EXP.GNFS.ZS", Name: "Exports of goods and services", Category: "trade"}, unit: "% of GDP"},
	} {
		a.table[s.entry.ID] = s
		a.order = append(a.order, s.entry.ID)
	}

	return a
}

func (a *Adapter) Name() string { return sourceName }

func (a *Adapter) Configured() bool { return true }

func (a *Adapter) MaxIDsPerCall() int { return maxIDsPerCall }

func (a *Adapter) Catalog() sources.Catalog {
	cat := sources.Catalog{Source: sourceName, Configured: true}
	for _, id := range a.order {
		cat.Entries = append(cat.Entries, a.table[id].entry)
	}
	return cat
}

// FetchSeries fetches each indicator with its own request covering all
// requested countries, serialized with the configured delay.
func (a *Adapter) FetchSeries(ctx context.Context, ids []string, q sources.Query) ([]sources.DataPoint, error) {
	if err := sources.CheckBatch(a, ids); err != nil {
		return nil, err
	}

	countries := q.Countries
	if len(countries) == 0 {
		countries = defaultCountries
	}

	points := make([]sources.DataPoint, 0, 128)
	for i, id := range ids {
		if i > 0 {
			if err := sources.Throttle(ctx, a.cfg.Delay()); err != nil {
				return nil, err
			}
		}

		rows, err := a.fetchOne(ctx, id, countries, q)
		if err != nil {
			return nil, err
		}

		mapped, err := a.toDataPoints(id, rows)
		if err != nil {
			return nil, err
		}
		points = append(points, mapped...)
	}

	return points, nil
}

func (a *Adapter) fetchOne(ctx context.Context, id string, countries []string, q sources.Query) ([]row, error) {
	u := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&per_page=1000",
		a.cfg.WorldBankBaseURL, strings.Join(countries, ";"), id)
	if q.StartYear > 0 && q.EndYear > 0 {
		u += fmt.Sprintf("&date=%d:%d", q.StartYear, q.EndYear)
	}

	var envelope []json.RawMessage
	err := fetch.Do(ctx, sourceName, a.retry, func(ctx context.Context) error {
		envelope = nil
		return fetch.GetJSON(ctx, a.client, sourceName, u, &envelope)
	})
	if err != nil {
		return nil, err
	}

	return decodeEnvelope(id, envelope)
}

// decodeEnvelope unpacks the provider's [meta, rows] array. A one-element
// array carries an error message list instead of data.
func decodeEnvelope(id string, envelope []json.RawMessage) ([]row, error) {
	if len(envelope) == 1 {
		var em errorMeta
		if json.Unmarshal(envelope[0], &em) == nil && len(em.Message) > 0 {
			return nil, errs.Validation(sourceName, "indicator %s: %s", id, em.Message[0].Value)
		}
		return nil, errs.Validation(sourceName, "indicator %s: unexpected one-element response", id)
	}
	if len(envelope) != 2 {
		return nil, errs.Validation(sourceName, "indicator %s: expected [meta, rows], got %d elements", id, len(envelope))
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return nil, errs.Validation(sourceName, "indicator %s: malformed metadata: %v", id, err)
	}

	var rows []row
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, errs.Validation(sourceName, "indicator %s: malformed rows: %v", id, err)
	}
	return rows, nil
}

// Package imf adapts the datamapper-style API to the canonical DataPoint
// model. Values arrive as a nested map of indicator -> country -> year ->
// value; requests are per indicator and serialized with the configured
// delay.
package imf

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"econfeed/core/errs"
	"econfeed/core/fetch"
	"econfeed/core/period"
	"econfeed/core/utils"
	"econfeed/feature/sources"
)

const (
	sourceName    = "imf"
	displayName   = "International Monetary Fund"
	maxIDsPerCall = 20
)

var defaultCountries = []string{"USA", "DEU", "JPN", "GBR", "BRA", "IND", "CHN"}

// alpha2 maps the alpha-3 codes the provider uses to the canonical alpha-2
// country codes; unmapped codes pass through as-is.
var alpha2 = map[string]string{
	"USA": "US", "DEU": "DE", "JPN": "JP", "GBR": "GB",
	"BRA": "BR", "IND": "IN", "CHN": "CN", "FRA": "FR",
	"ITA": "IT", "CAN": "CA", "MEX": "MX", "KOR": "KR",
}

// valuesResponse is the datamapper envelope: indicator -> country -> year.
type valuesResponse struct {
	Values map[string]map[string]map[string]any `json:"values"`
}

// Adapter implements sources.Adapter for the datamapper API.
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
		{entry: sources.CatalogEntry{ID: "NGDP_RPCH", Name: "Real GDP Growth", Category: "growth"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "PCPIPCH", Name: "Inflation Rate, Average Consumer Prices", Category: "prices"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "LUR", Name: "Unemployment Rate", Category: "labor"}, unit: "%"},
		{entry: sources.CatalogEntry{ID: "GGXWDG_NGDP", Name: "General Government Gross Debt", Category: "fiscal"}, unit: "% of GDP"},
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

// FetchSeries fetches each indicator with its own request, serialized with
// the configured delay.
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

		u := fmt.Sprintf("%s/%s/%s", a.cfg.IMFBaseURL, id, strings.Join(countries, "/"))

		var resp valuesResponse
		err := fetch.Do(ctx, sourceName, a.retry, func(ctx context.Context) error {
			resp = valuesResponse{}
			return fetch.GetJSON(ctx, a.client, sourceName, u, &resp)
		})
		if err != nil {
			return nil, err
		}

		mapped, err := a.toDataPoints(id, &resp, q)
		if err != nil {
			return nil, err
		}
		points = append(points, mapped...)
	}

	return points, nil
}

func (a *Adapter) toDataPoints(id string, resp *valuesResponse, q sources.Query) ([]sources.DataPoint, error) {
	byCountry, ok := resp.Values[id]
	if !ok {
		return nil, errs.Validation(sourceName, "response missing values for indicator %s", id)
	}

	info, known := a.table[id]
	if !known {
		info = seriesInfo{entry: sources.CatalogEntry{ID: id, Name: id, Category: "economy"}}
	}

	// Deterministic order across the nested maps.
	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	points := make([]sources.DataPoint, 0, 64)
	for _, c := range countries {
		years := make([]string, 0, len(byCountry[c]))
		for y := range byCountry[c] {
			years = append(years, y)
		}
		sort.Strings(years)

		code := c
		if mapped, ok := alpha2[c]; ok {
			code = mapped
		}

		for _, y := range years {
			value := utils.NumberString(byCountry[c][y])
			if value == "" {
				return nil, errs.Validation(sourceName, "indicator %s: non-numeric value for %s/%s", id, c, y)
			}
			if outsideQuery(y, q) {
				continue
			}

			isoDate, label := period.Normalize(y)
			points = append(points, sources.DataPoint{
				SourceKey:   id,
				NameHint:    info.entry.Name,
				CountryCode: code,
				Category:    info.entry.Category,
				IsoDate:     isoDate,
				PeriodLabel: label,
				Value:       value,
				Unit:        info.unit,
				SourceName:  displayName,
				SourceURL:   "https://www.imf.org/external/datamapper",
			})
		}
	}

	return points, nil
}

// outsideQuery drops years beyond the requested bounds; the provider has no
// server-side range filter.
func outsideQuery(year string, q sources.Query) bool {
	if len(year) != 4 {
		return true
	}
	if q.StartYear > 0 && year < fmt.Sprintf("%04d", q.StartYear) {
		return true
	}
	if q.EndYear > 0 && year > fmt.Sprintf("%04d", q.EndYear) {
		return true
	}
	return false
}

package worldbank

import (
	"econfeed/core/errs"
	"econfeed/core/period"
	"econfeed/core/utils"
	"econfeed/feature/sources"
)

// toDataPoints normalizes provider rows. Null values are periods the
// provider has not reported yet and are dropped; a row missing its country
// or date is a shape error and rejects the response.
func (a *Adapter) toDataPoints(id string, rows []row) ([]sources.DataPoint, error) {
	info, known := a.table[id]
	if !known {
		info = seriesInfo{entry: sources.CatalogEntry{ID: id, Name: id, Category: "development"}}
	}

	points := make([]sources.DataPoint, 0, len(rows))
	for _, r := range rows {
		if r.Value == nil {
			continue
		}
		if r.Country.ID == "" || r.Date == "" {
			return nil, errs.Validation(sourceName, "indicator %s: row missing country or date", id)
		}

		value := utils.NumberString(r.Value)
		if value == "" {
			return nil, errs.Validation(sourceName, "indicator %s: non-numeric value for %s/%s", id, r.Country.ID, r.Date)
		}

		name := info.entry.Name
		if r.Indicator.Value != "" {
			name = r.Indicator.Value
		}
		unit := info.unit
		if r.Unit != "" {
			unit = r.Unit
		}

		// Annual dates arrive as bare years; quarterly data uses
		// "2024Q1" which passes through Normalize unchanged.
		isoDate, label := period.Normalize(r.Date)
		points = append(points, sources.DataPoint{
			SourceKey:   id,
			NameHint:    name,
			CountryCode: r.Country.ID,
			Category:    info.entry.Category,
			IsoDate:     isoDate,
			PeriodLabel: label,
			Value:       value,
			Unit:        unit,
			SourceName:  displayName,
			SourceURL:   "https://data.worldbank.org",
		})
	}

	return points, nil
}

package fred

import (
	"strconv"

	"econfeed/core/errs"
	"econfeed/core/period"
	"econfeed/feature/sources"
)

// toDataPoints validates the response shape and normalizes observations.
// Observations the provider marks as missing (value ".") are dropped; any
// other malformed observation rejects the whole response.
func (a *Adapter) toDataPoints(id string, resp *observationsResponse) ([]sources.DataPoint, error) {
	info, known := a.table[id]
	if !known {
		info = seriesInfo{entry: sources.CatalogEntry{ID: id, Name: id, CountryCode: "US", Category: "economy"}}
	}

	points := make([]sources.DataPoint, 0, len(resp.Observations))
	for _, obs := range resp.Observations {
		if obs.Value == "." {
			continue
		}
		if len(obs.Date) != 10 {
			return nil, errs.Validation(sourceName, "series %s: malformed date %q", id, obs.Date)
		}
		if _, err := strconv.ParseFloat(obs.Value, 64); err != nil {
			return nil, errs.Validation(sourceName, "series %s: non-numeric value %q", id, obs.Value)
		}

		// Observation dates are period starts; YYYY-MM is the canonical
		// monthly convention.
		isoDate, label := period.Normalize(obs.Date[:7])
		points = append(points, sources.DataPoint{
			SourceKey:   id,
			NameHint:    info.entry.Name,
			CountryCode: info.entry.CountryCode,
			Category:    info.entry.Category,
			IsoDate:     isoDate,
			PeriodLabel: label,
			Value:       obs.Value,
			Unit:        info.unit,
			SourceName:  displayName,
			SourceURL:   "https://fred.stlouisfed.org",
		})
	}

	return points, nil
}

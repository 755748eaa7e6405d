package bls

import (
	"fmt"
	"strconv"

	"econfeed/core/errs"
	"econfeed/core/period"
	"econfeed/feature/sources"
)

// toDataPoints validates the response shape and normalizes every
// observation. Any shape mismatch rejects the whole response; there is no
// partial acceptance.
func (a *Adapter) toDataPoints(resp apiResponse) ([]sources.DataPoint, error) {
	points := make([]sources.DataPoint, 0, 64)

	for _, series := range resp.Results.Series {
		if series.SeriesID == "" {
			return nil, errs.Validation(sourceName, "series missing seriesID")
		}
		entry := a.entry(series.SeriesID)

		for _, obs := range series.Data {
			raw, err := rawPeriod(obs)
			if err != nil {
				return nil, err
			}
			if _, parseErr := strconv.ParseFloat(obs.Value, 64); parseErr != nil {
				return nil, errs.Validation(sourceName, "series %s: non-numeric value %q", series.SeriesID, obs.Value)
			}

			isoDate, label := period.Normalize(raw)
			points = append(points, sources.DataPoint{
				SourceKey:   series.SeriesID,
				NameHint:    entry.Name,
				CountryCode: entry.CountryCode,
				Category:    entry.Category,
				IsoDate:     isoDate,
				PeriodLabel: label,
				Value:       obs.Value,
				Unit:        "index",
				SourceName:  displayName,
				SourceURL:   "https://www.bls.gov",
			})
		}
	}

	return points, nil
}

// rawPeriod converts the provider's year+period pair into the canonical
// period-string conventions core/period understands.
func rawPeriod(obs observation) (string, error) {
	if len(obs.Year) != 4 || len(obs.Period) < 2 {
		return "", errs.Validation(sourceName, "malformed observation period %q/%q", obs.Year, obs.Period)
	}

	kind, num := obs.Period[:1], obs.Period[1:]
	n, err := strconv.Atoi(num)
	if err != nil {
		return "", errs.Validation(sourceName, "malformed observation period %q", obs.Period)
	}

	switch kind {
	case "M":
		if n == 13 {
			// M13 is the provider's annual average.
			return obs.Year, nil
		}
		return fmt.Sprintf("%s-%02d", obs.Year, n), nil
	case "Q":
		return fmt.Sprintf("%s-Q%d", obs.Year, n), nil
	case "A":
		return obs.Year, nil
	default:
		return "", errs.Validation(sourceName, "unknown period kind %q", obs.Period)
	}
}

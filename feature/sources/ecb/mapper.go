package ecb

import (
	"sort"
	"strconv"

	"econfeed/core/errs"
	"econfeed/core/period"
	"econfeed/core/utils"
	"econfeed/feature/sources"
)

// toDataPoints flattens the SDMX message: observation indices resolve
// against the TIME_PERIOD dimension in the structure block. Any index
// without a matching period, or a non-numeric observation, rejects the
// whole response.
func (a *Adapter) toDataPoints(id string, resp *sdmxResponse) ([]sources.DataPoint, error) {
	if len(resp.DataSets) == 0 {
		return nil, errs.Validation(sourceName, "series %s: response has no data sets", id)
	}

	periods, err := timePeriods(resp)
	if err != nil {
		return nil, err
	}

	info, known := a.table[id]
	if !known {
		info = seriesInfo{entry: sources.CatalogEntry{ID: id, Name: id, CountryCode: "EU", Category: "economy"}}
	}

	points := make([]sources.DataPoint, 0, len(periods))
	for _, series := range resp.DataSets[0].Series {
		// Deterministic order: observation indices sorted numerically.
		idxs := make([]int, 0, len(series.Observations))
		byIdx := make(map[int][]any, len(series.Observations))
		for k, obs := range series.Observations {
			idx, convErr := strconv.Atoi(k)
			if convErr != nil {
				return nil, errs.Validation(sourceName, "series %s: non-numeric observation index %q", id, k)
			}
			idxs = append(idxs, idx)
			byIdx[idx] = obs
		}
		sort.Ints(idxs)

		for _, idx := range idxs {
			if idx < 0 || idx >= len(periods) {
				return nil, errs.Validation(sourceName, "series %s: observation index %d outside period dimension", id, idx)
			}
			obs := byIdx[idx]
			if len(obs) == 0 {
				continue
			}
			value := utils.NumberString(obs[0])
			if value == "" {
				continue
			}

			isoDate, label := period.Normalize(periods[idx])
			points = append(points, sources.DataPoint{
				SourceKey:   id,
				NameHint:    info.entry.Name,
				CountryCode: info.entry.CountryCode,
				Category:    info.entry.Category,
				IsoDate:     isoDate,
				PeriodLabel: label,
				Value:       value,
				Unit:        info.unit,
				SourceName:  displayName,
				SourceURL:   "https://data.ecb.europa.eu",
			})
		}
	}

	return points, nil
}

func timePeriods(resp *sdmxResponse) ([]string, error) {
	for _, dim := range resp.Structure.Dimensions.Observation {
		if dim.ID != "TIME_PERIOD" {
			continue
		}
		periods := make([]string, len(dim.Values))
		for i, v := range dim.Values {
			periods[i] = v.ID
		}
		return periods, nil
	}
	return nil, errs.Validation(sourceName, "response missing TIME_PERIOD dimension")
}

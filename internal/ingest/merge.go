package ingest

import (
	"fmt"
	"sort"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
)

// HourlyBlock is one upstream API response: parallel hourly arrays keyed by
// a shared time axis. A nil entry in a value array is a missing sample (the
// provider emits JSON null for sensor gaps).
type HourlyBlock struct {
	Times  []time.Time
	Values map[domain.ParameterKey][]*float64
}

// MergeHourly combines hourly blocks from different upstream endpoints
// (marine and weather APIs report disjoint parameter sets) into a single
// Series keyed by timestamp. Every value array must match its block's time
// axis length; mismatches are upstream data-shape errors and fail fast with
// the offending parameter named.
func MergeHourly(blocks ...HourlyBlock) (domain.Series, error) {
	merged := map[time.Time]map[domain.ParameterKey]float64{}

	for _, block := range blocks {
		for key, values := range block.Values {
			if len(values) != len(block.Times) {
				return nil, fmt.Errorf("merge hourly: parameter %s has %d values for %d timestamps",
					key, len(values), len(block.Times))
			}
			for i, v := range values {
				if v == nil {
					continue
				}
				ts := block.Times[i].UTC()
				if merged[ts] == nil {
					merged[ts] = map[domain.ParameterKey]float64{}
				}
				merged[ts][key] = *v
			}
		}
		// Timestamps with only missing samples still occupy a series
		// position so smoothing renders them as gaps.
		for _, ts := range block.Times {
			ts = ts.UTC()
			if merged[ts] == nil {
				merged[ts] = map[domain.ParameterKey]float64{}
			}
		}
	}

	series := make(domain.Series, 0, len(merged))
	for ts, values := range merged {
		series = append(series, domain.Observation{Timestamp: ts, Values: values})
	}
	sort.Slice(series, func(a, b int) bool {
		return series[a].Timestamp.Before(series[b].Timestamp)
	})
	return series, nil
}

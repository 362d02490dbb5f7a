package domain_test

import (
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
)

var seriesStart = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// fp returns a pointer to v, used to spell out missing (nil) vs present samples.
func fp(v float64) *float64 { return &v }

// hourlySeries builds a Series with one observation per hour for a single
// parameter. A nil value produces an observation with the parameter missing.
func hourlySeries(key domain.ParameterKey, values ...*float64) domain.Series {
	series := make(domain.Series, len(values))
	for i, v := range values {
		obs := domain.Observation{
			Timestamp: seriesStart.Add(time.Duration(i) * time.Hour),
			Values:    map[domain.ParameterKey]float64{},
		}
		if v != nil {
			obs.Values[key] = *v
		}
		series[i] = obs
	}
	return series
}

// openSpecies is a baseline species record that is suitable under mild
// conditions; tests override individual fields.
func openSpecies() domain.SpeciesRecord {
	return domain.SpeciesRecord{
		ID:            "yft",
		Name:          "Yellowfin Tuna",
		TempRange:     domain.TempRange{Low: 20, High: 28},
		MaxWaveHeight: 2.5,
		SeasonMonths:  allMonths(),
		LegalStatus:   domain.StatusOpen,
		StockHealth:   80,
		Trend:         domain.TrendStable,
	}
}

func allMonths() []time.Month {
	months := make([]time.Month, 12)
	for i := range months {
		months[i] = time.Month(i + 1)
	}
	return months
}

func mildConditions() domain.Conditions {
	return domain.Conditions{SeaSurfaceTemp: 25, WaveHeight: 1.0}
}

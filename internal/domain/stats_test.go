package domain_test

import (
	"testing"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats_OutlierSeries(t *testing.T) {
	// [10,10,10,10,50]: mean 18, population std dev 16, z(50) = 2.0.
	series := hourlySeries(domain.ParamWaveHeight, fp(10), fp(10), fp(10), fp(10), fp(50))

	stats := domain.ComputeStats(series, domain.ParamWaveHeight)

	assert.InDelta(t, 18.0, stats.Mean, 1e-9)
	assert.InDelta(t, 16.0, stats.StdDev, 1e-9)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 50.0, stats.Max)
	assert.Equal(t, 5, stats.SampleCount)
	assert.Equal(t, 1, stats.ModerateCount)
	assert.Equal(t, 0, stats.ExtremeCount)
	assert.Equal(t, 1, stats.AnomalyCount)
}

func TestComputeStats_EmptyAndAllMissing(t *testing.T) {
	tests := []struct {
		name   string
		series domain.Series
	}{
		{"empty series", nil},
		{"all samples missing", hourlySeries(domain.ParamWindSpeed, nil, nil, nil)},
		{"other parameter only", hourlySeries(domain.ParamWaveHeight, fp(1), fp(2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := domain.ComputeStats(tt.series, domain.ParamWindSpeed)
			assert.Equal(t, domain.ParameterStats{}, stats)
		})
	}
}

func TestComputeStats_MissingValuesExcluded(t *testing.T) {
	series := hourlySeries(domain.ParamSeaSurfaceTemp, fp(10), nil, fp(20), nil)

	stats := domain.ComputeStats(series, domain.ParamSeaSurfaceTemp)

	assert.Equal(t, 2, stats.SampleCount)
	assert.InDelta(t, 15.0, stats.Mean, 1e-9)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)
}

func TestComputeStats_ConstantSeriesHasNoAnomalies(t *testing.T) {
	series := hourlySeries(domain.ParamAirPressure, fp(1013), fp(1013), fp(1013))

	stats := domain.ComputeStats(series, domain.ParamAirPressure)

	// z is defined as 0 when std dev is 0, so nothing classifies as anomalous.
	assert.Equal(t, 0.0, stats.StdDev)
	assert.Equal(t, 0, stats.AnomalyCount)
}

func TestComputeStats_ExtremeOutlier(t *testing.T) {
	// Many identical values plus one far outlier push |z| past 3.
	values := make([]*float64, 0, 21)
	for i := 0; i < 20; i++ {
		values = append(values, fp(10))
	}
	values = append(values, fp(100))
	series := hourlySeries(domain.ParamWindSpeed, values...)

	stats := domain.ComputeStats(series, domain.ParamWindSpeed)

	assert.Equal(t, 1, stats.ExtremeCount)
	assert.Equal(t, 0, stats.ModerateCount)
	assert.Equal(t, 1, stats.AnomalyCount)
}

func TestComputeStats_MinMeanMaxOrdering(t *testing.T) {
	tests := []struct {
		name   string
		values []*float64
	}{
		{"increasing", []*float64{fp(1), fp(2), fp(3), fp(4)}},
		{"negative values", []*float64{fp(-5), fp(-1), fp(-12)}},
		{"with gaps", []*float64{fp(3.2), nil, fp(0.5), nil, fp(7.7)}},
		{"single sample", []*float64{fp(42)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := domain.ComputeStats(hourlySeries(domain.ParamWaveHeight, tt.values...), domain.ParamWaveHeight)
			assert.LessOrEqual(t, stats.Min, stats.Mean)
			assert.LessOrEqual(t, stats.Mean, stats.Max)
		})
	}
}

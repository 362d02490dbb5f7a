package ingest

import (
	"testing"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(n int) []time.Time {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func fp(v float64) *float64 { return &v }

func TestMergeHourly_CombinesDisjointParameters(t *testing.T) {
	marine := HourlyBlock{
		Times: hours(2),
		Values: map[domain.ParameterKey][]*float64{
			domain.ParamWaveHeight:     {fp(1.2), fp(1.4)},
			domain.ParamSeaSurfaceTemp: {fp(21.0), nil},
		},
	}
	weather := HourlyBlock{
		Times: hours(2),
		Values: map[domain.ParameterKey][]*float64{
			domain.ParamWindSpeed: {fp(10), fp(12)},
		},
	}

	series, err := MergeHourly(marine, weather)
	require.NoError(t, err)
	require.Len(t, series, 2)

	wave, ok := series[0].Value(domain.ParamWaveHeight)
	require.True(t, ok)
	assert.Equal(t, 1.2, wave)

	wind, ok := series[0].Value(domain.ParamWindSpeed)
	require.True(t, ok)
	assert.Equal(t, 10.0, wind)

	// Null sample stays missing after merge.
	_, ok = series[1].Value(domain.ParamSeaSurfaceTemp)
	assert.False(t, ok)
}

func TestMergeHourly_SortedOutput(t *testing.T) {
	reversed := HourlyBlock{
		Times: []time.Time{hours(3)[2], hours(3)[0], hours(3)[1]},
		Values: map[domain.ParameterKey][]*float64{
			domain.ParamWaveHeight: {fp(3), fp(1), fp(2)},
		},
	}

	series, err := MergeHourly(reversed)
	require.NoError(t, err)
	require.Len(t, series, 3)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Timestamp.After(series[i-1].Timestamp))
	}
}

func TestMergeHourly_AllMissingHourKeepsPosition(t *testing.T) {
	block := HourlyBlock{
		Times: hours(3),
		Values: map[domain.ParameterKey][]*float64{
			domain.ParamWaveHeight: {fp(1.0), nil, fp(1.2)},
		},
	}

	series, err := MergeHourly(block)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Empty(t, series[1].Values)
}

func TestMergeHourly_LengthMismatch(t *testing.T) {
	block := HourlyBlock{
		Times: hours(3),
		Values: map[domain.ParameterKey][]*float64{
			domain.ParamWaveHeight: {fp(1.0)},
		},
	}

	_, err := MergeHourly(block)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wave_height")
}

func TestMergeHourly_Empty(t *testing.T) {
	series, err := MergeHourly()
	require.NoError(t, err)
	assert.Empty(t, series)
}

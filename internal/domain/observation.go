package domain

import "time"

// ParameterKey identifies one environmental parameter within an observation.
type ParameterKey string

// Parameters tracked by the engine. Upstream sources may carry more columns;
// anything outside this set is dropped during ingestion.
const (
	ParamSeaSurfaceTemp ParameterKey = "sea_surface_temperature"
	ParamWindSpeed      ParameterKey = "wind_speed"
	ParamWaveHeight     ParameterKey = "wave_height"
	ParamAirPressure    ParameterKey = "air_pressure"
)

// Parameters lists all known parameter keys in stable report order.
var Parameters = []ParameterKey{
	ParamSeaSurfaceTemp,
	ParamWindSpeed,
	ParamWaveHeight,
	ParamAirPressure,
}

// KnownParameter reports whether key is one of the tracked parameters.
func KnownParameter(key ParameterKey) bool {
	for _, p := range Parameters {
		if p == key {
			return true
		}
	}
	return false
}

// Observation is one timestamped set of environmental readings. A parameter
// absent from Values is a missing sample; missing is never encoded as zero.
type Observation struct {
	Timestamp time.Time                `json:"timestamp"`
	Values    map[ParameterKey]float64 `json:"values"`
}

// Value returns the sample for key and whether it is present.
func (o Observation) Value(key ParameterKey) (float64, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Series is an ordered sequence of observations. Timestamps are non-decreasing
// but may repeat or leave gaps. The engine treats a Series as immutable.
type Series []Observation

// LatestValue returns the most recent present sample for key, scanning
// backwards past missing values.
func LatestValue(s Series, key ParameterKey) (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if v, ok := s[i].Value(key); ok {
			return v, true
		}
	}
	return 0, false
}

// Conditions is a current-conditions snapshot used by the scoring components.
type Conditions struct {
	SeaSurfaceTemp float64 `json:"sea_surface_temperature"`
	WaveHeight     float64 `json:"wave_height"`
}

// LatestConditions derives a current-conditions snapshot from the most recent
// present SST and wave-height samples. Returns false when either parameter has
// no sample anywhere in the series.
func LatestConditions(s Series) (Conditions, bool) {
	sst, okT := LatestValue(s, ParamSeaSurfaceTemp)
	wave, okW := LatestValue(s, ParamWaveHeight)
	if !okT || !okW {
		return Conditions{}, false
	}
	return Conditions{SeaSurfaceTemp: sst, WaveHeight: wave}, true
}

package domain

import "math"

// Anomaly classification thresholds in standard-deviation units.
const (
	moderateZScore = 2.0
	extremeZScore  = 3.0
)

// ParameterStats holds descriptive statistics and anomaly counts for one
// parameter, recomputed from scratch on every input series.
type ParameterStats struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	SampleCount int     `json:"sample_count"`

	AnomalyCount  int `json:"anomaly_count"`
	ModerateCount int `json:"moderate_count"`
	ExtremeCount  int `json:"extreme_count"`
}

// ComputeStats derives mean, population standard deviation, min/max, and
// z-score anomaly counts for one parameter. Missing samples are excluded from
// every statistic; a series with zero present samples yields the zero value
// rather than NaN. Classification runs only after the full series has been
// scanned, because the thresholds depend on the complete-series mean and
// standard deviation.
func ComputeStats(series Series, key ParameterKey) ParameterStats {
	var sum, minV, maxV float64
	count := 0
	for _, obs := range series {
		v, ok := obs.Value(key)
		if !ok {
			continue
		}
		if count == 0 || v < minV {
			minV = v
		}
		if count == 0 || v > maxV {
			maxV = v
		}
		sum += v
		count++
	}
	if count == 0 {
		return ParameterStats{}
	}

	mean := sum / float64(count)

	var varianceSum float64
	for _, obs := range series {
		if v, ok := obs.Value(key); ok {
			diff := v - mean
			varianceSum += diff * diff
		}
	}
	stdDev := math.Sqrt(varianceSum / float64(count))

	stats := ParameterStats{
		Mean:        mean,
		StdDev:      stdDev,
		Min:         minV,
		Max:         maxV,
		SampleCount: count,
	}

	for _, obs := range series {
		v, ok := obs.Value(key)
		if !ok {
			continue
		}
		// z is defined as 0 when the series has no spread.
		var z float64
		if stdDev > 0 {
			z = (v - mean) / stdDev
		}
		switch absZ := math.Abs(z); {
		case absZ >= extremeZScore:
			stats.ExtremeCount++
		case absZ >= moderateZScore:
			stats.ModerateCount++
		}
	}
	stats.AnomalyCount = stats.ModerateCount + stats.ExtremeCount

	return stats
}

package domain

import "time"

// DefaultSmoothingWindow is the trailing window size used when the caller
// does not supply one. Matches one day of hourly samples.
const DefaultSmoothingWindow = 24

// SmoothedPoint is one position of a moving-average output. Valid is false
// when no present sample fell inside the trailing window; callers must render
// that as a gap, not as zero.
type SmoothedPoint struct {
	Timestamp time.Time
	Value     float64
	Valid     bool
}

// MovingAverage computes a trailing moving average over the window
// [max(0, i-window+1), i] for every input position. The output always has the
// same length as the input. Missing samples never contribute to the running
// sum or count, entering or leaving the window. window values <= 0 fall back
// to DefaultSmoothingWindow.
func MovingAverage(series Series, key ParameterKey, window int) []SmoothedPoint {
	if window <= 0 {
		window = DefaultSmoothingWindow
	}

	out := make([]SmoothedPoint, len(series))
	var sum float64
	valid := 0

	for i, obs := range series {
		if v, ok := obs.Value(key); ok {
			sum += v
			valid++
		}
		// Index i-window slides out of the trailing window at position i.
		if j := i - window; j >= 0 {
			if v, ok := series[j].Value(key); ok {
				sum -= v
				valid--
			}
		}

		out[i].Timestamp = obs.Timestamp
		if valid > 0 {
			out[i].Value = sum / float64(valid)
			out[i].Valid = true
		}
	}

	return out
}

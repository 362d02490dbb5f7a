// Package domain implements the marine conditions analytics and fishery
// scoring engine. Everything in this package is a pure, synchronous function
// over immutable input snapshots: no I/O, no shared mutable state, no
// locking. Ingestion adapters materialize the inputs; this package only
// computes.
//
// # Observation model
//
// A Series is an ordered sequence of timestamped readings of the four tracked
// parameters (sea-surface temperature, wind speed, wave height, air
// pressure). Timestamps are non-decreasing but may repeat or gap. A parameter
// missing from an observation is absent from its Values map; missing is never
// conflated with a reading of zero, anywhere in this package.
//
// # Statistics and anomalies
//
// ComputeStats derives min/max/mean and the population standard deviation per
// parameter, then classifies each sample by its z-score against the
// complete-series statistics:
//
//	moderate:  2.0 <= |z| < 3.0
//	extreme:   |z| >= 3.0
//
// MovingAverage produces a trailing window average (default 24 samples) with
// explicit gap markers where a window holds no valid sample.
//
// # Scoring
//
// Three independently weighted composites, all bounded to [0,100]:
//
//	SustainabilityScore  stock health 40% + temperature fit 40% + wave safety 20%
//	ScoreRisk            sustainability index (stock 50%, inverse MSY pressure 25%,
//	                     inverse declining share 15%, inverse climate stress 10%)
//	                     and collapse risk (MSY pressure 35%, declining 25%,
//	                     inverse stock 25%, climate stress 15%), plus a linear
//	                     six-month projection.
//
// Climate stress is a step function of sea-surface temperature with bands
// (-inf,26]→20, (26,28]→40, (28,30]→60, (30,inf)→90. The discontinuity is
// intentional: the bands encode categorical thermal stress thresholds.
//
// # Suitability and alerts
//
// EvaluateSuitability walks an ordered rule table (protected, season,
// temperature, waves) and reports the first blocking rule, so the reason is
// always the most legally significant constraint. GenerateAlerts emits every
// applicable advisory in fixed rule order with no deduplication.
package domain

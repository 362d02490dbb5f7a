package domain

import "math"

// SustainabilityLevel classifies a sustainability index.
type SustainabilityLevel string

const (
	LevelSustainable SustainabilityLevel = "sustainable"
	LevelCaution     SustainabilityLevel = "caution"
	LevelCritical    SustainabilityLevel = "critical"
)

// RiskLevel classifies a collapse-risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// msyPressureCap bounds the averaged MSY utilization so a single heavily
// overfished record cannot dominate the aggregate.
const msyPressureCap = 120

// climateStressBands maps sea-surface temperature to a categorical ecological
// stress score. The mapping is a deliberate step function: each band is
// (previous upper, Upper] with an open-ended top band, encoding thermal stress
// thresholds rather than a continuous relationship. Kept as an explicit sorted
// breakpoint table so boundary behavior is unit-testable on its own.
var climateStressBands = []struct {
	Upper float64
	Score float64
}{
	{Upper: 26, Score: 20},
	{Upper: 28, Score: 40},
	{Upper: 30, Score: 60},
}

// climateStressExtreme applies above the last band boundary.
const climateStressExtreme = 90

// ClimateStress returns the categorical climate stress score for a
// sea-surface temperature in °C.
func ClimateStress(sst float64) float64 {
	for _, band := range climateStressBands {
		if sst <= band.Upper {
			return band.Score
		}
	}
	return climateStressExtreme
}

// RiskScores holds the computed fields of a risk assessment. It is absent
// entirely when no stock records matched, which is distinct from scores that
// legitimately compute to zero.
type RiskScores struct {
	AvgStockHealth   float64 `json:"avg_stock_health"`
	MSYPressure      float64 `json:"msy_pressure"`
	DecliningPercent float64 `json:"declining_percent"`
	ClimateStress    float64 `json:"climate_stress"`

	SustainabilityIndex int                 `json:"sustainability_index"`
	SustainabilityLevel SustainabilityLevel `json:"sustainability_level"`
	CollapseRisk        int                 `json:"collapse_risk"`
	RiskLevel           RiskLevel           `json:"risk_level"`

	// ProjectedIndex is a linear six-month projection: the current index
	// eroded by 5% of the collapse risk.
	ProjectedIndex int `json:"projected_index_6mo"`
}

// RiskAssessment is the output bundle of the risk framework.
type RiskAssessment struct {
	Count  int         `json:"count"`
	Scores *RiskScores `json:"scores,omitempty"`
}

// ScoreRisk computes the sustainability index, collapse-risk score, and
// six-month projection for a set of stock records under a climate signal sst.
// Records with msy_tonnes <= 0 are excluded from the utilization average so a
// malformed record can never inject a division by zero. Zero records yield
// {Count: 0} with Scores omitted.
func ScoreRisk(stocks []StockRecord, sst float64) RiskAssessment {
	if len(stocks) == 0 {
		return RiskAssessment{Count: 0}
	}

	var healthSum, utilizationSum float64
	utilizationCount := 0
	declining := 0
	for _, st := range stocks {
		healthSum += clamp(st.StockHealthPercent, 0, 100)
		if st.MSYTonnes > 0 {
			utilizationSum += st.CurrentCatchTonnes / st.MSYTonnes * 100
			utilizationCount++
		}
		if st.Trend == TrendDeclining || st.Trend == TrendCritical {
			declining++
		}
	}

	n := float64(len(stocks))
	avgStockHealth := healthSum / n

	var msyPressure float64
	if utilizationCount > 0 {
		msyPressure = math.Min(utilizationSum/float64(utilizationCount), msyPressureCap)
	}

	decliningPercent := float64(declining) / n * 100
	climate := ClimateStress(sst)

	index := math.Round(clamp(
		avgStockHealth*0.5+(100-msyPressure)*0.25+(100-decliningPercent)*0.15+(100-climate)*0.10,
		0, 100))
	risk := math.Round(clamp(
		msyPressure*0.35+decliningPercent*0.25+(100-avgStockHealth)*0.25+climate*0.15,
		0, 100))
	projected := math.Round(clamp(index-risk*0.05, 0, 100))

	return RiskAssessment{
		Count: len(stocks),
		Scores: &RiskScores{
			AvgStockHealth:      avgStockHealth,
			MSYPressure:         msyPressure,
			DecliningPercent:    decliningPercent,
			ClimateStress:       climate,
			SustainabilityIndex: int(index),
			SustainabilityLevel: classifySustainability(int(index)),
			CollapseRisk:        int(risk),
			RiskLevel:           classifyRisk(int(risk)),
			ProjectedIndex:      int(projected),
		},
	}
}

func classifySustainability(index int) SustainabilityLevel {
	switch {
	case index >= 70:
		return LevelSustainable
	case index < 50:
		return LevelCritical
	default:
		return LevelCaution
	}
}

func classifyRisk(risk int) RiskLevel {
	switch {
	case risk < 30:
		return RiskLow
	case risk > 60:
		return RiskHigh
	default:
		return RiskModerate
	}
}

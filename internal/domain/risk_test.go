package domain_test

import (
	"testing"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullyUtilizedStock(id string) domain.StockRecord {
	return domain.StockRecord{
		ID:                 id,
		Region:             "gulf-north",
		Species:            "Yellowfin Tuna",
		StockHealthPercent: 80,
		Trend:              domain.TrendStable,
		MSYTonnes:          100,
		CurrentCatchTonnes: 100,
	}
}

func TestScoreRisk_NoRecords(t *testing.T) {
	result := domain.ScoreRisk(nil, 27)

	assert.Equal(t, 0, result.Count)
	assert.Nil(t, result.Scores)
}

// Reference scenario: three stocks at exactly 100% MSY utilization, stable
// trend, 80% health, SST 27°C. Every output is reproducible by hand:
//
//	index = round(80*0.5 + (100-100)*0.25 + 100*0.15 + (100-40)*0.10) = 61
//	risk  = round(100*0.35 + 0 + 20*0.25 + 40*0.15) = 46
//	proj  = round(61 - 46*0.05) = 59
func TestScoreRisk_ReferenceScenario(t *testing.T) {
	stocks := []domain.StockRecord{
		fullyUtilizedStock("s1"), fullyUtilizedStock("s2"), fullyUtilizedStock("s3"),
	}

	result := domain.ScoreRisk(stocks, 27)

	require.NotNil(t, result.Scores)
	assert.Equal(t, 3, result.Count)
	assert.InDelta(t, 80.0, result.Scores.AvgStockHealth, 1e-9)
	assert.InDelta(t, 100.0, result.Scores.MSYPressure, 1e-9)
	assert.InDelta(t, 0.0, result.Scores.DecliningPercent, 1e-9)
	assert.InDelta(t, 40.0, result.Scores.ClimateStress, 1e-9)
	assert.Equal(t, 61, result.Scores.SustainabilityIndex)
	assert.Equal(t, domain.LevelCaution, result.Scores.SustainabilityLevel)
	assert.Equal(t, 46, result.Scores.CollapseRisk)
	assert.Equal(t, domain.RiskModerate, result.Scores.RiskLevel)
	assert.Equal(t, 59, result.Scores.ProjectedIndex)
}

func TestClimateStress_Bands(t *testing.T) {
	tests := []struct {
		name string
		sst  float64
		want float64
	}{
		{"cool water", 20, 20},
		{"upper edge of first band", 26, 20},
		{"just above first band", 26.01, 40},
		{"upper edge of second band", 28, 40},
		{"third band", 29, 60},
		{"upper edge of third band", 30, 60},
		{"above all bands", 30.01, 90},
		{"extreme heat", 34, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClimateStress(tt.sst))
		})
	}
}

func TestScoreRisk_ZeroMSYExcluded(t *testing.T) {
	healthy := fullyUtilizedStock("s1")
	broken := fullyUtilizedStock("s2")
	broken.MSYTonnes = 0 // must not divide by zero nor poison the average

	result := domain.ScoreRisk([]domain.StockRecord{healthy, broken}, 24)

	require.NotNil(t, result.Scores)
	assert.InDelta(t, 100.0, result.Scores.MSYPressure, 1e-9)
}

func TestScoreRisk_AllMSYInvalid(t *testing.T) {
	broken := fullyUtilizedStock("s1")
	broken.MSYTonnes = 0

	result := domain.ScoreRisk([]domain.StockRecord{broken}, 24)

	require.NotNil(t, result.Scores)
	assert.Equal(t, 0.0, result.Scores.MSYPressure)
}

func TestScoreRisk_MSYPressureCapped(t *testing.T) {
	overfished := fullyUtilizedStock("s1")
	overfished.CurrentCatchTonnes = 500 // 500% utilization

	result := domain.ScoreRisk([]domain.StockRecord{overfished}, 24)

	require.NotNil(t, result.Scores)
	assert.Equal(t, 120.0, result.Scores.MSYPressure)
}

func TestScoreRisk_DecliningTrends(t *testing.T) {
	stable := fullyUtilizedStock("s1")
	declining := fullyUtilizedStock("s2")
	declining.Trend = domain.TrendDeclining
	critical := fullyUtilizedStock("s3")
	critical.Trend = domain.TrendCritical
	improving := fullyUtilizedStock("s4")
	improving.Trend = domain.TrendImproving

	result := domain.ScoreRisk([]domain.StockRecord{stable, declining, critical, improving}, 24)

	require.NotNil(t, result.Scores)
	assert.InDelta(t, 50.0, result.Scores.DecliningPercent, 1e-9)
}

// Raising any single stock's health must never lower the sustainability index.
func TestScoreRisk_MonotonicInStockHealth(t *testing.T) {
	base := []domain.StockRecord{
		fullyUtilizedStock("s1"), fullyUtilizedStock("s2"), fullyUtilizedStock("s3"),
	}
	base[1].Trend = domain.TrendDeclining

	prev := -1
	for health := 0.0; health <= 100; health += 5 {
		stocks := append([]domain.StockRecord(nil), base...)
		stocks[0].StockHealthPercent = health

		result := domain.ScoreRisk(stocks, 29)
		require.NotNil(t, result.Scores)
		assert.GreaterOrEqual(t, result.Scores.SustainabilityIndex, prev,
			"index decreased when stock health rose to %.0f", health)
		prev = result.Scores.SustainabilityIndex
	}
}

func TestScoreRisk_LevelClassification(t *testing.T) {
	healthy := fullyUtilizedStock("s1")
	healthy.StockHealthPercent = 95
	healthy.CurrentCatchTonnes = 20 // 20% utilization

	result := domain.ScoreRisk([]domain.StockRecord{healthy}, 22)

	require.NotNil(t, result.Scores)
	// index = round(95*0.5 + 80*0.25 + 15 + 8) = 91, risk = round(7 + 0 + 1.25 + 3) = 11
	assert.Equal(t, domain.LevelSustainable, result.Scores.SustainabilityLevel)
	assert.Equal(t, domain.RiskLow, result.Scores.RiskLevel)

	collapsed := fullyUtilizedStock("s2")
	collapsed.StockHealthPercent = 10
	collapsed.Trend = domain.TrendCritical
	collapsed.CurrentCatchTonnes = 300

	result = domain.ScoreRisk([]domain.StockRecord{collapsed}, 31)

	require.NotNil(t, result.Scores)
	assert.Equal(t, domain.LevelCritical, result.Scores.SustainabilityLevel)
	assert.Equal(t, domain.RiskHigh, result.Scores.RiskLevel)
}

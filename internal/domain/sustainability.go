package domain

import "math"

// Fixed weights of the regional sustainability score. These encode the design
// of the index and are deliberately not configurable at runtime.
const (
	sustainWeightStock = 0.4
	sustainWeightTemp  = 0.4
	sustainWeightWave  = 0.2
)

// SustainabilityScore aggregates a fleet-wide sustainability score in [0,100]
// from average stock health (40%), the share of species whose preferred
// temperature band contains the current SST (40%), and the share of species
// for which current waves are within their safety limit (20%). An empty
// species list scores 0.
func SustainabilityScore(species []SpeciesRecord, cond Conditions) int {
	if len(species) == 0 {
		return 0
	}

	var healthSum float64
	tempOK, waveOK := 0, 0
	for _, sp := range species {
		healthSum += clamp(sp.StockHealth, 0, 100)
		if sp.TempRange.Contains(cond.SeaSurfaceTemp) {
			tempOK++
		}
		if sp.MaxWaveHeight >= cond.WaveHeight {
			waveOK++
		}
	}

	n := float64(len(species))
	avgStockHealth := healthSum / n
	tempScore := float64(tempOK) / n * 100
	waveScore := float64(waveOK) / n * 100

	total := avgStockHealth*sustainWeightStock + tempScore*sustainWeightTemp + waveScore*sustainWeightWave
	return int(math.Round(total))
}

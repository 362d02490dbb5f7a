package domain

import (
	"fmt"
	"time"
)

// Suitability is the outcome of evaluating one species against current
// conditions. Reason is set only when the species is unsuitable.
type Suitability struct {
	Suitable bool   `json:"suitable"`
	Reason   string `json:"reason,omitempty"`
}

// suitabilityRule pairs a blocking predicate with the reason it reports.
// Rules are evaluated in declaration order and the first blocking rule wins,
// so the reported reason is always the most legally significant constraint:
// conservation status before season, season before physical conditions.
type suitabilityRule struct {
	name   string
	blocks func(sp SpeciesRecord, cond Conditions, month time.Month) bool
	reason func(sp SpeciesRecord, cond Conditions) string
}

var suitabilityRules = []suitabilityRule{
	{
		name: "protected",
		blocks: func(sp SpeciesRecord, _ Conditions, _ time.Month) bool {
			return sp.LegalStatus == StatusProtected
		},
		reason: func(sp SpeciesRecord, _ Conditions) string {
			return fmt.Sprintf("%s is protected and may not be fished", sp.Name)
		},
	},
	{
		name: "season",
		blocks: func(sp SpeciesRecord, _ Conditions, month time.Month) bool {
			return !sp.InSeason(month)
		},
		reason: func(sp SpeciesRecord, _ Conditions) string {
			return fmt.Sprintf("%s is outside its open season", sp.Name)
		},
	},
	{
		name: "temperature",
		blocks: func(sp SpeciesRecord, cond Conditions, _ time.Month) bool {
			return !sp.TempRange.Contains(cond.SeaSurfaceTemp)
		},
		reason: func(sp SpeciesRecord, cond Conditions) string {
			return fmt.Sprintf("water temperature %.1f°C is outside the preferred range %.1f°C to %.1f°C",
				cond.SeaSurfaceTemp, sp.TempRange.Low, sp.TempRange.High)
		},
	},
	{
		name: "waves",
		blocks: func(sp SpeciesRecord, cond Conditions, _ time.Month) bool {
			return cond.WaveHeight > sp.MaxWaveHeight
		},
		reason: func(sp SpeciesRecord, cond Conditions) string {
			return fmt.Sprintf("wave height %.1f m exceeds the %.1f m safety limit",
				cond.WaveHeight, sp.MaxWaveHeight)
		},
	},
}

// EvaluateSuitability checks a species against current conditions for the
// given month. The month is passed explicitly so evaluation stays a pure
// function of its inputs; callers derive it from the evaluation clock.
func EvaluateSuitability(sp SpeciesRecord, cond Conditions, month time.Month) Suitability {
	for _, rule := range suitabilityRules {
		if rule.blocks(sp, cond, month) {
			return Suitability{Suitable: false, Reason: rule.reason(sp, cond)}
		}
	}
	return Suitability{Suitable: true}
}

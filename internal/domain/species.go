package domain

import (
	"fmt"
	"strings"
	"time"
)

// LegalStatus is the regulatory status of a species.
type LegalStatus string

const (
	StatusOpen       LegalStatus = "open"
	StatusRestricted LegalStatus = "restricted"
	StatusProtected  LegalStatus = "protected"
)

// ParseLegalStatus validates a legal status string from reference data.
func ParseLegalStatus(s string) (LegalStatus, error) {
	switch LegalStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusRestricted:
		return StatusRestricted, nil
	case StatusProtected:
		return StatusProtected, nil
	default:
		return "", fmt.Errorf("unknown legal status %q", s)
	}
}

// StockTrend is the reported direction of a stock's health.
type StockTrend string

const (
	TrendStable    StockTrend = "stable"
	TrendDeclining StockTrend = "declining"
	TrendCritical  StockTrend = "critical"
	TrendImproving StockTrend = "improving"
)

// ParseStockTrend validates a trend string from reference data.
func ParseStockTrend(s string) (StockTrend, error) {
	switch StockTrend(strings.ToLower(strings.TrimSpace(s))) {
	case TrendStable:
		return TrendStable, nil
	case TrendDeclining:
		return TrendDeclining, nil
	case TrendCritical:
		return TrendCritical, nil
	case TrendImproving:
		return TrendImproving, nil
	default:
		return "", fmt.Errorf("unknown stock trend %q", s)
	}
}

// TempRange is the preferred water temperature band of a species, in °C.
// Low must not exceed High.
type TempRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether temp falls inside the band, bounds inclusive.
func (r TempRange) Contains(temp float64) bool {
	return temp >= r.Low && temp <= r.High
}

// SpeciesRecord is one entry of the species reference dataset. Read-only to
// the engine; the source of truth is the external dataset loaded at startup.
type SpeciesRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	TempRange     TempRange    `json:"temp_range"`
	MaxWaveHeight float64      `json:"max_wave_height"`
	SeasonMonths  []time.Month `json:"season_months"`
	LegalStatus   LegalStatus  `json:"legal_status"`
	StockHealth   float64      `json:"stock_health"`
	Trend         StockTrend   `json:"trend"`
}

// InSeason reports whether month is one of the species' open months.
func (sp SpeciesRecord) InSeason(month time.Month) bool {
	for _, m := range sp.SeasonMonths {
		if m == month {
			return true
		}
	}
	return false
}

// StockRecord is one entry of the regional stock assessment dataset consumed
// by the risk framework.
type StockRecord struct {
	ID                 string     `json:"id"`
	Region             string     `json:"region"`
	Species            string     `json:"species"`
	StockHealthPercent float64    `json:"stock_health_percent"`
	Trend              StockTrend `json:"trend"`
	MSYTonnes          float64    `json:"msy_tonnes"`
	CurrentCatchTonnes float64    `json:"current_catch_tonnes"`
	Protected          bool       `json:"protected"`
}

// FilterStocksByRegion returns the records whose region matches, ignoring
// case. An empty region matches everything.
func FilterStocksByRegion(stocks []StockRecord, region string) []StockRecord {
	if region == "" {
		return stocks
	}
	out := make([]StockRecord, 0, len(stocks))
	for _, st := range stocks {
		if strings.EqualFold(st.Region, region) {
			out = append(out, st)
		}
	}
	return out
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

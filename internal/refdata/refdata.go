// Package refdata loads the species and stock reference datasets from JSON
// files at startup. Records are validated on load so the engine can trust
// every field; a bad record fails the whole load with its position named.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
)

// rawSpecies is the on-disk shape before enum and range validation.
type rawSpecies struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TempRange     rawTemp `json:"temp_range"`
	MaxWaveHeight float64 `json:"max_wave_height"`
	SeasonMonths  []int   `json:"season_months"`
	LegalStatus   string  `json:"legal_status"`
	StockHealth   float64 `json:"stock_health"`
	Trend         string  `json:"trend"`
}

type rawTemp struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type rawStock struct {
	ID                 string  `json:"id"`
	Region             string  `json:"region"`
	Species            string  `json:"species"`
	StockHealthPercent float64 `json:"stock_health_percent"`
	Trend              string  `json:"trend"`
	MSYTonnes          float64 `json:"msy_tonnes"`
	CurrentCatchTonnes float64 `json:"current_catch_tonnes"`
	Protected          bool    `json:"protected"`
}

// LoadSpecies reads and validates the species dataset at path.
func LoadSpecies(path string) ([]domain.SpeciesRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load species dataset: %w", err)
	}
	return ParseSpecies(data)
}

// ParseSpecies validates a species dataset held in memory.
func ParseSpecies(data []byte) ([]domain.SpeciesRecord, error) {
	var raw []rawSpecies
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse species dataset: %w", err)
	}

	out := make([]domain.SpeciesRecord, 0, len(raw))
	seen := map[string]bool{}
	for i, r := range raw {
		rec, err := validateSpecies(r)
		if err != nil {
			return nil, fmt.Errorf("species record %d (%s): %w", i, r.ID, err)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("species record %d: duplicate id %q", i, rec.ID)
		}
		seen[rec.ID] = true
		out = append(out, rec)
	}
	return out, nil
}

func validateSpecies(r rawSpecies) (domain.SpeciesRecord, error) {
	if r.ID == "" {
		return domain.SpeciesRecord{}, fmt.Errorf("missing id")
	}
	if r.Name == "" {
		return domain.SpeciesRecord{}, fmt.Errorf("missing name")
	}
	if r.TempRange.Low > r.TempRange.High {
		return domain.SpeciesRecord{}, fmt.Errorf("temp_range low %.1f exceeds high %.1f",
			r.TempRange.Low, r.TempRange.High)
	}
	if r.MaxWaveHeight < 0 {
		return domain.SpeciesRecord{}, fmt.Errorf("negative max_wave_height %.1f", r.MaxWaveHeight)
	}

	status, err := domain.ParseLegalStatus(r.LegalStatus)
	if err != nil {
		return domain.SpeciesRecord{}, err
	}
	trend, err := domain.ParseStockTrend(r.Trend)
	if err != nil {
		return domain.SpeciesRecord{}, err
	}

	months := make([]time.Month, 0, len(r.SeasonMonths))
	for _, m := range r.SeasonMonths {
		if m < 1 || m > 12 {
			return domain.SpeciesRecord{}, fmt.Errorf("season month %d out of range", m)
		}
		months = append(months, time.Month(m))
	}

	health := r.StockHealth
	if health < 0 {
		health = 0
	}
	if health > 100 {
		health = 100
	}

	return domain.SpeciesRecord{
		ID:            r.ID,
		Name:          r.Name,
		TempRange:     domain.TempRange{Low: r.TempRange.Low, High: r.TempRange.High},
		MaxWaveHeight: r.MaxWaveHeight,
		SeasonMonths:  months,
		LegalStatus:   status,
		StockHealth:   health,
		Trend:         trend,
	}, nil
}

// LoadStocks reads and validates the stock assessment dataset at path.
func LoadStocks(path string) ([]domain.StockRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stocks dataset: %w", err)
	}
	return ParseStocks(data)
}

// ParseStocks validates a stock dataset held in memory. MSY values at or
// below zero are kept; the risk framework excludes them from utilization.
func ParseStocks(data []byte) ([]domain.StockRecord, error) {
	var raw []rawStock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse stocks dataset: %w", err)
	}

	out := make([]domain.StockRecord, 0, len(raw))
	for i, r := range raw {
		if r.ID == "" {
			return nil, fmt.Errorf("stock record %d: missing id", i)
		}
		if r.Species == "" {
			return nil, fmt.Errorf("stock record %d (%s): missing species", i, r.ID)
		}
		trend, err := domain.ParseStockTrend(r.Trend)
		if err != nil {
			return nil, fmt.Errorf("stock record %d (%s): %w", i, r.ID, err)
		}

		health := r.StockHealthPercent
		if health < 0 {
			health = 0
		}
		if health > 100 {
			health = 100
		}

		out = append(out, domain.StockRecord{
			ID:                 r.ID,
			Region:             r.Region,
			Species:            r.Species,
			StockHealthPercent: health,
			Trend:              trend,
			MSYTonnes:          r.MSYTonnes,
			CurrentCatchTonnes: r.CurrentCatchTonnes,
			Protected:          r.Protected,
		})
	}
	return out, nil
}

// Command genmock generates deterministic fixture data for local development
// and the test suites: an hourly observation archive CSV plus species and
// stock reference datasets. It uses the actual domain types so the fixtures
// always match what the engine consumes.
//
// Usage:
//
//	go run ./cmd/genmock -out data -days 30
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
)

var baseDate = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// seed is fixed so regenerating fixtures never churns test expectations.
const seed = 424242

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "data", "output directory for fixture files")
	days := flag.Int("days", 30, "days of hourly observations to generate")
	flag.Parse()

	if *days <= 0 {
		return fmt.Errorf("-days must be positive")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	archivePath := filepath.Join(*outDir, "observations.csv")
	if err := writeArchive(archivePath, *days); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	log.Printf("wrote archive: %s (%d hours)", archivePath, *days*24)

	speciesPath := filepath.Join(*outDir, "species.json")
	if err := writeJSON(speciesPath, mockSpecies()); err != nil {
		return fmt.Errorf("writing species dataset: %w", err)
	}
	log.Printf("wrote species dataset: %s", speciesPath)

	stocksPath := filepath.Join(*outDir, "stocks.json")
	if err := writeJSON(stocksPath, mockStocks()); err != nil {
		return fmt.Errorf("writing stocks dataset: %w", err)
	}
	log.Printf("wrote stocks dataset: %s", stocksPath)

	return nil
}

// writeArchive emits hourly observations with a diurnal SST cycle, weather
// noise, and occasional sensor gaps (blank cells).
func writeArchive(path string, days int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(seed))
	w := csv.NewWriter(f)

	header := []string{"timestamp"}
	for _, key := range domain.Parameters {
		header = append(header, string(key))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for hour := 0; hour < days*24; hour++ {
		ts := baseDate.Add(time.Duration(hour) * time.Hour)
		dayFrac := float64(hour%24) / 24

		sst := 24.5 + 1.5*math.Sin(2*math.Pi*dayFrac) + rng.NormFloat64()*0.3
		wind := math.Max(0, 12+rng.NormFloat64()*4)
		wave := math.Max(0.1, 1.0+wind/20+rng.NormFloat64()*0.3)
		pressure := 1013 + rng.NormFloat64()*4

		row := []string{
			ts.Format(time.RFC3339),
			cell(sst, rng),
			cell(wind, rng),
			cell(wave, rng),
			cell(pressure, rng),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// cell formats a sample, leaving roughly 3% of cells blank to exercise
// missing-sample handling downstream.
func cell(v float64, rng *rand.Rand) string {
	if rng.Float64() < 0.03 {
		return ""
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func mockSpecies() []domain.SpeciesRecord {
	return []domain.SpeciesRecord{
		{
			ID:            "yellowfin-tuna",
			Name:          "Yellowfin Tuna",
			TempRange:     domain.TempRange{Low: 20, High: 28},
			MaxWaveHeight: 2.5,
			SeasonMonths:  months(3, 4, 5, 6, 7, 8),
			LegalStatus:   domain.StatusOpen,
			StockHealth:   78,
			Trend:         domain.TrendStable,
		},
		{
			ID:            "red-snapper",
			Name:          "Red Snapper",
			TempRange:     domain.TempRange{Low: 18, High: 26},
			MaxWaveHeight: 2.0,
			SeasonMonths:  months(5, 6, 7),
			LegalStatus:   domain.StatusRestricted,
			StockHealth:   55,
			Trend:         domain.TrendImproving,
		},
		{
			ID:            "gag-grouper",
			Name:          "Gag Grouper",
			TempRange:     domain.TempRange{Low: 19, High: 27},
			MaxWaveHeight: 1.8,
			SeasonMonths:  months(6, 7, 8, 9),
			LegalStatus:   domain.StatusOpen,
			StockHealth:   42,
			Trend:         domain.TrendDeclining,
		},
		{
			ID:            "green-turtle",
			Name:          "Green Turtle",
			TempRange:     domain.TempRange{Low: 18, High: 30},
			MaxWaveHeight: 2.0,
			SeasonMonths:  months(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
			LegalStatus:   domain.StatusProtected,
			StockHealth:   35,
			Trend:         domain.TrendCritical,
		},
	}
}

func mockStocks() []domain.StockRecord {
	return []domain.StockRecord{
		{
			ID:                 "gn-tuna",
			Region:             "gulf-north",
			Species:            "Yellowfin Tuna",
			StockHealthPercent: 78,
			Trend:              domain.TrendStable,
			MSYTonnes:          1200,
			CurrentCatchTonnes: 1050,
		},
		{
			ID:                 "gn-snapper",
			Region:             "gulf-north",
			Species:            "Red Snapper",
			StockHealthPercent: 55,
			Trend:              domain.TrendImproving,
			MSYTonnes:          800,
			CurrentCatchTonnes: 620,
		},
		{
			ID:                 "gn-grouper",
			Region:             "gulf-north",
			Species:            "Gag Grouper",
			StockHealthPercent: 42,
			Trend:              domain.TrendDeclining,
			MSYTonnes:          400,
			CurrentCatchTonnes: 460,
		},
		{
			ID:                 "gn-turtle",
			Region:             "gulf-north",
			Species:            "Green Turtle",
			StockHealthPercent: 35,
			Trend:              domain.TrendCritical,
			MSYTonnes:          0,
			CurrentCatchTonnes: 0,
			Protected:          true,
		},
		{
			ID:                 "gs-tuna",
			Region:             "gulf-south",
			Species:            "Yellowfin Tuna",
			StockHealthPercent: 64,
			Trend:              domain.TrendDeclining,
			MSYTonnes:          900,
			CurrentCatchTonnes: 980,
		},
	}
}

func months(ms ...int) []time.Month {
	out := make([]time.Month, len(ms))
	for i, m := range ms {
		out[i] = time.Month(m)
	}
	return out
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// Command report runs the full evaluation offline: it loads an archive CSV
// and the reference datasets, computes statistics, scores, alerts, and the
// risk assessment, and prints the results. Useful for checking datasets
// without standing up the service.
//
// Usage:
//
//	go run ./cmd/report \
//	  -archive data/observations.csv \
//	  -species data/species.json \
//	  -stocks data/stocks.json \
//	  -region gulf-north
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/bluefin-labs/seastate/internal/ingest"
	"github.com/bluefin-labs/seastate/internal/refdata"
)

func main() {
	archivePath := flag.String("archive", "", "path to the observation archive CSV")
	speciesPath := flag.String("species", "", "path to the species dataset JSON")
	stocksPath := flag.String("stocks", "", "path to the stocks dataset JSON")
	region := flag.String("region", "", "region filter for the risk assessment (empty matches all)")
	flag.Parse()

	if *archivePath == "" || *speciesPath == "" || *stocksPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*archivePath, *speciesPath, *stocksPath, *region); code != 0 {
		os.Exit(code)
	}
}

func run(archivePath, speciesPath, stocksPath, region string) int {
	series, err := loadArchive(archivePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load archive: %v\n", err)
		return 1
	}
	species, err := refdata.LoadSpecies(speciesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load species: %v\n", err)
		return 1
	}
	stocks, err := refdata.LoadStocks(stocksPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load stocks: %v\n", err)
		return 1
	}

	fmt.Println("=== Sea State Report ===")
	fmt.Printf("observations: %d  species: %d  stocks: %d\n\n", len(series), len(species), len(stocks))

	printStats(series)
	printConditions(series, species)
	printRisk(series, stocks, region)
	return 0
}

func loadArchive(path string) (domain.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadArchive(f)
}

func printStats(series domain.Series) {
	fmt.Println("-- Parameter statistics --")
	for _, key := range domain.Parameters {
		st := domain.ComputeStats(series, key)
		if st.SampleCount == 0 {
			fmt.Printf("%-24s no samples\n", key)
			continue
		}
		fmt.Printf("%-24s mean=%.2f std=%.2f min=%.2f max=%.2f n=%d anomalies=%d (moderate=%d extreme=%d)\n",
			key, st.Mean, st.StdDev, st.Min, st.Max, st.SampleCount,
			st.AnomalyCount, st.ModerateCount, st.ExtremeCount)
	}
	fmt.Println()
}

func printConditions(series domain.Series, species []domain.SpeciesRecord) {
	cond, ok := domain.LatestConditions(series)
	if !ok {
		fmt.Println("-- No current conditions available; skipping scoring --")
		fmt.Println()
		return
	}

	fmt.Println("-- Current conditions --")
	fmt.Printf("sea surface temp: %.1f °C  wave height: %.1f m\n\n", cond.SeaSurfaceTemp, cond.WaveHeight)

	month := domain.CurrentMonth()
	fmt.Printf("-- Suitability (month: %s) --\n", month)
	for _, sp := range species {
		result := domain.EvaluateSuitability(sp, cond, month)
		if result.Suitable {
			fmt.Printf("%-20s suitable\n", sp.Name)
		} else {
			fmt.Printf("%-20s not suitable: %s\n", sp.Name, result.Reason)
		}
	}
	fmt.Println()

	score := domain.SustainabilityScore(species, cond)
	fmt.Printf("-- Sustainability score: %d/100 --\n\n", score)

	alerts := domain.GenerateAlerts(species, score, cond)
	fmt.Printf("-- Alerts (%d) --\n", len(alerts))
	for _, a := range alerts {
		fmt.Printf("[%s] %s\n", a.Type, a.Message)
	}
	fmt.Println()
}

func printRisk(series domain.Series, stocks []domain.StockRecord, region string) {
	sst, ok := domain.LatestValue(series, domain.ParamSeaSurfaceTemp)
	if !ok {
		fmt.Println("-- No sea surface temperature; skipping risk assessment --")
		return
	}

	assessment := domain.ScoreRisk(domain.FilterStocksByRegion(stocks, region), sst)
	fmt.Printf("-- Risk assessment (region: %s, stocks: %d) --\n", regionLabel(region), assessment.Count)
	if assessment.Scores == nil {
		fmt.Println("no stock records matched")
		return
	}

	sc := assessment.Scores
	fmt.Printf("avg stock health:     %.1f\n", sc.AvgStockHealth)
	fmt.Printf("msy pressure:         %.1f\n", sc.MSYPressure)
	fmt.Printf("declining:            %.1f%%\n", sc.DecliningPercent)
	fmt.Printf("climate stress:       %.0f\n", sc.ClimateStress)
	fmt.Printf("sustainability index: %d (%s)\n", sc.SustainabilityIndex, sc.SustainabilityLevel)
	fmt.Printf("collapse risk:        %d (%s)\n", sc.CollapseRisk, sc.RiskLevel)
	fmt.Printf("projected index 6mo:  %d\n", sc.ProjectedIndex)
}

func regionLabel(region string) string {
	if region == "" {
		return "all"
	}
	return region
}

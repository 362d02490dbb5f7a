// Package ingest normalizes upstream observation data into the uniform
// record shape the analytics engine consumes: archive CSV files, live-feed
// JSON records, and hourly-array API responses. The engine itself never
// parses formats; everything arriving here leaves as a domain.Series with
// missing samples preserved as missing, never as zero.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
)

// Archive timestamps are RFC 3339 or the shortened hourly form some
// providers emit ("2026-03-01T15:00").
var archiveTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// ReadArchive parses a historical archive CSV into a Series. The header row
// names the columns; a "timestamp" column is required and the remaining
// columns are matched against the known parameter keys (unknown columns are
// ignored). Blank or non-numeric cells become missing samples. Rows are
// sorted stably by timestamp so the output satisfies the non-decreasing
// invariant even when the archive was concatenated out of order.
func ReadArchive(r io.Reader) (domain.Series, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read archive csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("archive csv has no data rows")
	}

	header := rows[0]
	tsCol := -1
	paramCols := map[int]domain.ParameterKey{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "timestamp" {
			tsCol = i
			continue
		}
		if key := domain.ParameterKey(name); domain.KnownParameter(key) {
			paramCols[i] = key
		}
	}
	if tsCol < 0 {
		return nil, fmt.Errorf("archive csv missing timestamp column")
	}

	series := make(domain.Series, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if tsCol >= len(row) {
			continue
		}
		ts, err := parseArchiveTime(row[tsCol])
		if err != nil {
			return nil, fmt.Errorf("archive csv line %d: %w", i+2, err)
		}

		obs := domain.Observation{
			Timestamp: ts,
			Values:    make(map[domain.ParameterKey]float64, len(paramCols)),
		}
		for col, key := range paramCols {
			if col >= len(row) {
				continue
			}
			if v, ok := parseSample(row[col]); ok {
				obs.Values[key] = v
			}
		}
		series = append(series, obs)
	}

	sort.SliceStable(series, func(a, b int) bool {
		return series[a].Timestamp.Before(series[b].Timestamp)
	})
	return series, nil
}

func parseArchiveTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range archiveTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// parseSample parses one CSV cell. Blank cells and non-numeric sentinels
// ("null", "NaN", "UNK") are missing samples, not zeros.
func parseSample(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch strings.ToLower(s) {
	case "null", "nan", "unk", "n/a":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

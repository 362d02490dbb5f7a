package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
)

// RawReading is one unprocessed live-feed message together with its source
// position, so the feed can commit offsets only after a successful append.
type RawReading struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// wireReading is the JSON shape published by the live-feed collector.
// Pointer values distinguish explicit nulls (missing samples) from zeros.
type wireReading struct {
	Timestamp time.Time           `json:"timestamp"`
	Values    map[string]*float64 `json:"values"`
}

// ParseRawReading deserializes a live-feed message into an Observation.
// Null samples and parameters outside the tracked set are dropped; a zero
// timestamp falls back to the message timestamp.
func ParseRawReading(raw RawReading) (domain.Observation, error) {
	var rec wireReading
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return domain.Observation{}, fmt.Errorf("parse raw reading: %w", err)
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = raw.Timestamp
	}
	if ts.IsZero() {
		return domain.Observation{}, fmt.Errorf("parse raw reading: no timestamp")
	}

	obs := domain.Observation{
		Timestamp: ts.UTC(),
		Values:    make(map[domain.ParameterKey]float64, len(rec.Values)),
	}
	for name, v := range rec.Values {
		key := domain.ParameterKey(name)
		if v == nil || !domain.KnownParameter(key) {
			continue
		}
		obs.Values[key] = *v
	}
	return obs, nil
}

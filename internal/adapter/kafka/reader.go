// Package kafka consumes live ocean observations from a Kafka topic.
package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/bluefin-labs/seastate/internal/config"
	"github.com/bluefin-labs/seastate/internal/ingest"
	kafkago "github.com/segmentio/kafka-go"
)

// drainTimeout bounds how long ExtractBatch waits for messages beyond the
// first one, so a trickle of readings still forms small batches promptly.
const drainTimeout = 100 * time.Millisecond

// Reader consumes raw readings from the observation topic.
// It implements feed.BatchExtractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured observation topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Reader{reader: r, logger: logger}
}

// ExtractBatch blocks for the first message, then drains up to batchSize
// messages with a short deadline. Offsets are committed individually by the
// feed via each reading's Commit closure, after a successful append.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]ingest.RawReading, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]ingest.RawReading, 0, batchSize)
	batch = append(batch, r.mapMessage(first))

	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(drainCtx)
		if err != nil {
			// Deadline or cancellation ends the drain; the batch so far
			// is still delivered.
			break
		}
		batch = append(batch, r.mapMessage(msg))
	}
	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessage converts a Kafka message into a RawReading with a commit
// closure bound to this reader.
func (r *Reader) mapMessage(msg kafkago.Message) ingest.RawReading {
	return ingest.RawReading{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Commit: func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		},
	}
}

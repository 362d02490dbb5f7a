package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessage(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("buoy-42"),
		Value:     []byte(`{"timestamp":"2026-03-01T15:00:00Z","values":{"wave_height":1.8}}`),
		Topic:     "ocean-observations",
		Partition: 2,
		Offset:    42,
		Time:      now,
	}

	r := &Reader{}
	raw := r.mapMessage(msg)

	assert.Equal(t, []byte("buoy-42"), raw.Key)
	assert.JSONEq(t, string(msg.Value), string(raw.Value))
	assert.Equal(t, "ocean-observations", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.NotNil(t, raw.Commit)
}

func TestMapMessage_CommitBindsMessage(t *testing.T) {
	r := &Reader{reader: kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{"localhost:0"},
		Topic:   "ocean-observations",
		GroupID: "seastate",
	})}
	defer r.Close()

	raw := r.mapMessage(kafkago.Message{Offset: 7})

	// No broker is reachable; the commit closure must surface the error
	// rather than panic.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, raw.Commit(ctx))
}

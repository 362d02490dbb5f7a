package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bluefin-labs/seastate/internal/ingest"
	"github.com/bluefin-labs/seastate/internal/observability"
)

// BatchExtractor reads up to batchSize raw readings from the live feed.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]ingest.RawReading, error)
}

// Feed drives the extract-parse-append loop that keeps the observation
// store current from the live feed.
type Feed struct {
	extractor BatchExtractor
	store     *Store
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	batchSize int
}

// New creates a Feed with the given extractor, destination store, and
// observability.
func New(e BatchExtractor, store *Store, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Feed {
	return &Feed{
		extractor: e,
		store:     store,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// CheckReadiness returns nil once the feed has appended at least one
// observation, or an error describing why the service is not yet ready.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("feed has not appended any observations yet")
	}
	return nil
}

// MarkReady flags the feed as ready without processing. Used when the store
// is preloaded from an archive and live data is optional.
func (f *Feed) MarkReady() {
	f.ready.Store(true)
}

// Run executes the batch ingestion loop until the context is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("feed started", "batch_size", f.batchSize)
	f.metrics.FeedRunning.Set(1)
	defer f.metrics.FeedRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("feed stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !f.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-parse-append cycle. Returns false if the
// feed should stop.
func (f *Feed) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	rawBatch, err := f.extractor.ExtractBatch(ctx, f.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		f.logger.Error("extract batch failed", "error", err)
		return f.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	f.metrics.ReadingsConsumed.Add(float64(len(rawBatch)))
	f.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	appended := f.parseAndAppend(ctx, rawBatch)

	if appended > 0 {
		f.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		f.metrics.StoreSize.Set(float64(f.store.Len()))
		f.ready.Store(true)
	}
	return true
}

// parseAndAppend parses each reading, appends the successes to the store,
// and commits offsets. Malformed readings are skipped and committed so the
// feed never stalls on one bad message.
func (f *Feed) parseAndAppend(ctx context.Context, rawBatch []ingest.RawReading) int {
	appended := 0
	for _, raw := range rawBatch {
		obs, err := ingest.ParseRawReading(raw)
		if err != nil {
			f.logger.Warn("parse failed, skipping reading",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			f.metrics.ParseErrors.Inc()
			f.commitOffset(ctx, raw)
			continue
		}

		f.store.Append(obs)
		f.metrics.ReadingsAppended.Inc()
		f.commitOffset(ctx, raw)
		appended++
	}
	return appended
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the feed should stop.
func (f *Feed) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the reading's offset if a commit function is available.
func (f *Feed) commitOffset(ctx context.Context, raw ingest.RawReading) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		f.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

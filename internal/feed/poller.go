package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/bluefin-labs/seastate/internal/observability"
)

// Source fetches the latest hourly observations for a location. Implemented
// by the meteo adapter; the poller only sees this interface.
type Source interface {
	FetchHourly(ctx context.Context, lat, lon float64) (domain.Series, error)
}

// Poller periodically pulls hourly observations from a Source into the
// store. It complements the live feed for deployments without a broker.
type Poller struct {
	source   Source
	store    *Store
	logger   *slog.Logger
	metrics  *observability.Metrics
	lat, lon float64
	interval time.Duration

	// lastSeen is the newest timestamp already appended; hourly responses
	// overlap between polls and must not be appended twice.
	lastSeen time.Time
}

// NewPoller creates a Poller fetching for the given coordinates every
// interval.
func NewPoller(source Source, store *Store, logger *slog.Logger, metrics *observability.Metrics, lat, lon float64, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		store:    store,
		logger:   logger,
		metrics:  metrics,
		lat:      lat,
		lon:      lon,
		interval: interval,
	}
}

// Run fetches immediately, then on every interval tick until the context is
// cancelled. Fetch failures are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	p.metrics.PollerEnabled.Set(1)
	defer p.metrics.PollerEnabled.Set(0)

	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	series, err := p.source.FetchHourly(ctx, p.lat, p.lon)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("meteo fetch failed", "error", err)
		}
		return
	}
	fresh := make(domain.Series, 0, len(series))
	for _, obs := range series {
		if obs.Timestamp.After(p.lastSeen) {
			fresh = append(fresh, obs)
		}
	}
	if len(fresh) == 0 {
		return
	}
	p.lastSeen = fresh[len(fresh)-1].Timestamp

	p.store.Append(fresh...)
	p.metrics.StoreSize.Set(float64(p.store.Len()))
	p.logger.Debug("meteo fetch appended", "observations", len(fresh))
}

// Command seastate runs the ocean analytics service: it ingests observations
// from an archive file, the live feed, and the meteo poller, and serves the
// evaluation endpoints over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bluefin-labs/seastate/internal/adapter/httpapi"
	kafkaadapter "github.com/bluefin-labs/seastate/internal/adapter/kafka"
	"github.com/bluefin-labs/seastate/internal/adapter/meteo"
	"github.com/bluefin-labs/seastate/internal/config"
	"github.com/bluefin-labs/seastate/internal/feed"
	"github.com/bluefin-labs/seastate/internal/ingest"
	"github.com/bluefin-labs/seastate/internal/observability"
	"github.com/bluefin-labs/seastate/internal/refdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	species, err := refdata.LoadSpecies(cfg.SpeciesFile)
	if err != nil {
		logger.Error("failed to load species dataset", "error", err)
		os.Exit(1)
	}
	stocks, err := refdata.LoadStocks(cfg.StocksFile)
	if err != nil {
		logger.Error("failed to load stocks dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("reference data loaded", "species", len(species), "stocks", len(stocks))

	store := feed.NewStore(cfg.RetentionMax)

	// Preload the store from an archive file when configured, so evaluations
	// are available before any live data arrives.
	if cfg.ArchiveFile != "" {
		if err := preloadArchive(store, cfg.ArchiveFile); err != nil {
			logger.Error("failed to preload archive", "error", err)
			os.Exit(1)
		}
		logger.Info("archive preloaded", "file", cfg.ArchiveFile, "observations", store.Len())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Live feed (feature-flagged via KAFKA_BROKERS).
	var f *feed.Feed
	var reader *kafkaadapter.Reader
	if cfg.FeedEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		f = feed.New(reader, store, logger, metrics, cfg.BatchSize)
		if store.Len() > 0 {
			f.MarkReady()
		}
		go func() {
			if err := f.Run(ctx); err != nil {
				logger.Error("feed error", "error", err)
			}
		}()
		logger.Info("live feed enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("live feed disabled")
	}

	// Meteo poller (feature-flagged via METEO_ENABLED).
	if cfg.MeteoEnabled {
		client := meteo.NewClient(cfg.MeteoTimeout, logger, metrics)
		source := meteo.NewCachedSource(client, cfg.MeteoCacheSize, metrics)
		poller := feed.NewPoller(source, store, logger, metrics, cfg.Latitude, cfg.Longitude, cfg.PollInterval)
		go func() {
			if err := poller.Run(ctx); err != nil {
				logger.Error("poller error", "error", err)
			}
		}()
		logger.Info("meteo poller enabled",
			"lat", cfg.Latitude, "lon", cfg.Longitude, "interval", cfg.PollInterval)
	} else {
		logger.Info("meteo poller disabled")
	}

	var ready httpapi.ReadinessChecker
	if f != nil {
		ready = f
	} else {
		ready = storeReadiness{store: store}
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, store, species, stocks, cfg.Region, ready, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// storeReadiness reports ready once any observations exist, for deployments
// running without the live feed.
type storeReadiness struct {
	store *feed.Store
}

func (r storeReadiness) CheckReadiness(_ context.Context) error {
	if r.store.Len() == 0 {
		return errors.New("no observations ingested yet")
	}
	return nil
}

func preloadArchive(store *feed.Store, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	series, err := ingest.ReadArchive(file)
	if err != nil {
		return err
	}
	store.Append(series...)
	return nil
}

package snapshotwatch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/dataimporter/manager"
	"github.com/travigo/busfares/pkg/resolver"
	"github.com/travigo/busfares/pkg/util"
)

// Watcher keeps a Store current, reloading it when an import publishes a dataset update and
// optionally on a fixed interval
type Watcher struct {
	Store *resolver.Store

	Connection      rmq.Connection
	RefreshInterval time.Duration

	BatchSize int
	Timeout   time.Duration
}

// QueueName is unique per process so every API instance sees every update
func QueueName() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return fmt.Sprintf("%s-%s-%d", manager.DatasetUpdatesQueue, hostname, os.Getpid())
}

func RefreshIntervalFromEnvironment() (time.Duration, error) {
	interval := util.GetEnvironmentVariable("SNAPSHOT_REFRESH", "")
	if interval == "" {
		return 0, nil
	}

	duration, err := util.ParseISO8601Interval(interval)
	if err != nil {
		return 0, fmt.Errorf("parsing %sSNAPSHOT_REFRESH: %w", util.EnvironmentPrefix, err)
	}

	return duration, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	if w.BatchSize == 0 {
		w.BatchSize = 10
	}
	if w.Timeout == 0 {
		w.Timeout = 5 * time.Second
	}

	if w.Connection != nil {
		if err := w.startConsumer(ctx); err != nil {
			return err
		}
	}

	if w.RefreshInterval > 0 {
		go w.refreshPeriodically(ctx)
	}

	return nil
}

func (w *Watcher) startConsumer(ctx context.Context) error {
	queueName := QueueName()

	log.Info().Str("queue", queueName).Msg("Starting dataset update consumer")

	queue, err := w.Connection.OpenQueue(queueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(int64(w.BatchSize), 1*time.Second); err != nil {
		return err
	}

	consumer := &ReloadConsumer{Store: w.Store, ReloadTimeout: 2 * time.Minute}
	if _, err := queue.AddBatchConsumer("snapshot-reload", int64(w.BatchSize), w.Timeout, consumer); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		<-queue.StopConsuming()
		if _, _, err := queue.Destroy(); err != nil {
			log.Error().Err(err).Str("queue", queueName).Msg("Failed to remove dataset update queue")
		}
	}()

	return nil
}

func (w *Watcher) refreshPeriodically(ctx context.Context) {
	log.Info().Str("interval", w.RefreshInterval.String()).Msg("Refreshing routing dataset periodically")

	ticker := time.NewTicker(w.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Store.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to refresh routing dataset")
			}
		}
	}
}

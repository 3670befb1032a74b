package stats

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/resolver"
	"go.mongodb.org/mongo-driver/bson"
)

type RecordsStats struct {
	SnapshotVersion  string
	SnapshotLoadedAt time.Time
	Snapshot         resolver.SnapshotStats

	ServiceArrivals int64
}

var currentRecordsStatsLock sync.RWMutex
var currentRecordsStats = &RecordsStats{}

func CurrentRecordsStats() RecordsStats {
	currentRecordsStatsLock.RLock()
	defer currentRecordsStatsLock.RUnlock()

	return *currentRecordsStats
}

func UpdateRecordsStats(ctx context.Context, store *resolver.Store) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		recordsStats := CollectSnapshotStats(store)

		serviceArrivalsCollection := database.GetCollection(database.ServiceArrivalsCollection)
		numberServiceArrivals, err := serviceArrivalsCollection.CountDocuments(ctx, bson.D{})
		if err != nil {
			log.Error().Err(err).Msg("Failed to count service arrivals")
		}
		recordsStats.ServiceArrivals = numberServiceArrivals

		SetRecordsStats(recordsStats)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func CollectSnapshotStats(store *resolver.Store) *RecordsStats {
	recordsStats := &RecordsStats{}

	if snapshot := store.Snapshot(); snapshot != nil {
		recordsStats.SnapshotVersion = snapshot.Version
		recordsStats.SnapshotLoadedAt = snapshot.LoadedAt
		recordsStats.Snapshot = snapshot.Stats()
	}

	return recordsStats
}

func SetRecordsStats(recordsStats *RecordsStats) {
	currentRecordsStatsLock.Lock()
	defer currentRecordsStatsLock.Unlock()

	currentRecordsStats = recordsStats
}

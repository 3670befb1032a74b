package formats

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ImportServiceArrivals replaces the arrival documents previously supplied by the same dataset
func ImportServiceArrivals(serviceArrivals []*ctdf.ServiceArrivals, datasource *ctdf.DataSource) error {
	now := time.Now()

	queue := NewDatabaseBatchProcessingQueue(database.ServiceArrivalsCollection, 1*time.Second, 500)
	queue.Process()

	for _, arrivals := range serviceArrivals {
		arrivals.DataSource = datasource
		arrivals.ModificationDateTime = now

		filter := bson.M{
			"stopref":              arrivals.StopRef,
			"serviceno":            arrivals.ServiceNo,
			"datasource.datasetid": datasource.DatasetID,
		}

		queue.Add(mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(arrivals).SetUpsert(true))
	}

	written, err := queue.Wait()
	if err != nil {
		return fmt.Errorf("importing arrivals: %w", err)
	}

	deleted, err := database.GetCollection(database.ServiceArrivalsCollection).DeleteMany(context.Background(), bson.M{
		"datasource.datasetid": datasource.DatasetID,
		"datasource.timestamp": bson.M{"$ne": datasource.Timestamp},
	})
	if err != nil {
		return fmt.Errorf("cleaning up arrivals: %w", err)
	}

	log.Info().
		Str("dataset", datasource.DatasetID).
		Int("written", written).
		Int64("removed", deleted.DeletedCount).
		Msg("Imported service arrivals")

	return nil
}

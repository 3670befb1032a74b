package busfarescsv

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/formats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (b *BusFares) Import(dataset datasets.DataSet, datasource *ctdf.DataSource) error {
	if !dataset.ChangesReferenceData() {
		return fmt.Errorf("dataset %s supports none of stops, services, routestops or farebands", dataset.Identifier)
	}

	log.Info().Msg("Converting & Importing as CTDF into MongoDB")

	converted, err := b.ToCTDF(dataset, datasource)
	if err != nil {
		return err
	}

	p := pool.New().WithErrors()

	if dataset.SupportedObjects.Stops {
		p.Go(func() error {
			return importRecords(database.StopsCollection, converted.Stops, datasource, func(stop *ctdf.Stop) bson.M {
				return bson.M{"primaryidentifier": stop.PrimaryIdentifier}
			})
		})
	}
	if dataset.SupportedObjects.Services {
		p.Go(func() error {
			return importRecords(database.ServicesCollection, converted.Services, datasource, func(service *ctdf.Service) bson.M {
				return bson.M{"serviceno": service.ServiceNo, "direction": service.Direction}
			})
		})
	}
	if dataset.SupportedObjects.RouteStops {
		p.Go(func() error {
			return importRecords(database.RouteStopsCollection, converted.RouteStops, datasource, func(routeStop *ctdf.RouteStop) bson.M {
				return bson.M{
					"serviceno":    routeStop.ServiceNo,
					"direction":    routeStop.Direction,
					"stopsequence": routeStop.StopSequence,
				}
			})
		})
	}
	if dataset.SupportedObjects.FareBands {
		p.Go(func() error {
			return importRecords(database.FareBandsCollection, converted.FareBands, datasource, func(fareBand *ctdf.FareBand) bson.M {
				return bson.M{"category": fareBand.Category, "minkm": fareBand.MinKM, "maxkm": fareBand.MaxKM}
			})
		})
	}

	return p.Wait()
}

// importRecords upserts every record then removes what an earlier import of the same dataset left behind
func importRecords[T any](collectionName string, records []*T, datasource *ctdf.DataSource, filter func(*T) bson.M) error {
	log.Info().Str("collection", collectionName).Int("length", len(records)).Msg("Starting import")

	queue := formats.NewDatabaseBatchProcessingQueue(collectionName, 1*time.Second, 500)
	queue.Process()

	for _, record := range records {
		queue.Add(mongo.NewReplaceOneModel().SetFilter(filter(record)).SetReplacement(record).SetUpsert(true))
	}

	if _, err := queue.Wait(); err != nil {
		return fmt.Errorf("importing %s: %w", collectionName, err)
	}

	deleted, err := database.GetCollection(collectionName).DeleteMany(context.Background(), bson.M{
		"datasource.datasetid": datasource.DatasetID,
		"datasource.timestamp": bson.M{"$ne": datasource.Timestamp},
	})
	if err != nil {
		return fmt.Errorf("cleaning up %s: %w", collectionName, err)
	}

	log.Info().Str("collection", collectionName).Int64("removed", deleted.DeletedCount).Msg("Removed stale records")

	return nil
}

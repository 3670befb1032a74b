package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "busfares"

const (
	StopsCollection           = "stops"
	ServicesCollection        = "services"
	RouteStopsCollection      = "route_stops"
	FareBandsCollection       = "fare_bands"
	ServiceArrivalsCollection = "service_arrivals"
	DatasetVersionsCollection = "dataset_versions"
)

func Connect() error {
	connectionString := util.GetEnvironmentVariable("MONGODB_CONNECTION", defaultMongoConnectionString)
	dbName := util.GetEnvironmentVariable("MONGODB_DATABASE", defaultMongoDatabase)

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = 30 * time.Second

	err = backoff.RetryNotify(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return client.Ping(ctx, nil)
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("retry", wait.String()).Msg("MongoDB not reachable yet")
	})
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

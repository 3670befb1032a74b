package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createIndexesForCollection(StopsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	createIndexesForCollection(ServicesCollection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "serviceno", Value: 1},
				{Key: "direction", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	})

	createIndexesForCollection(RouteStopsCollection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "serviceno", Value: 1},
				{Key: "direction", Value: 1},
				{Key: "stopsequence", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "stopref", Value: 1}},
		},
	})

	createIndexesForCollection(FareBandsCollection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "minkm", Value: 1},
			},
		},
	})

	createIndexesForCollection(ServiceArrivalsCollection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "stopref", Value: 1},
				{Key: "serviceno", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "datasource.datasetid", Value: 1}},
		},
	})

	createIndexesForCollection(DatasetVersionsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dataset", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

func createIndexesForCollection(collectionName string, indexes []mongo.IndexModel) {
	_, err := GetCollection(collectionName).Indexes().CreateMany(context.Background(), indexes, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
	}
}

package insertrecords

import (
	"context"
	"fmt"

	"github.com/travigo/busfares/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var allowedCollections = []string{
	database.StopsCollection,
	database.ServicesCollection,
	database.RouteStopsCollection,
	database.FareBandsCollection,
}

// InsertDefinition is a hand maintained correction applied on top of the imported datasets,
// eg. a fare band the published data is missing
type InsertDefinition struct {
	Collection string                 `yaml:"Collection" validate:"required"`
	Match      map[string]interface{} `yaml:"Match" validate:"required,min=1"`
	Data       map[string]interface{} `yaml:"Data" validate:"required,min=1"`
}

func (i *InsertDefinition) Filter() bson.M {
	filter := bson.M{}
	for key, value := range i.Match {
		filter[key] = value
	}

	return filter
}

func (i *InsertDefinition) Upsert() error {
	collection := database.GetCollection(i.Collection)

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(context.Background(), i.Filter(), bson.M{"$set": i.Data}, opts)
	if err != nil {
		return fmt.Errorf("insert definition for %s: %w", i.Collection, err)
	}

	return nil
}

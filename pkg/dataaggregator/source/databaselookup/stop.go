package databaselookup

import (
	"context"
	"errors"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrStopNotFound = errors.New("could not find a matching Stop")

func (s Source) StopQuery(stopQuery query.Stop) (*ctdf.Stop, error) {
	filter := stopQuery.ToBson()
	if filter == nil {
		return nil, ErrStopNotFound
	}

	stopsCollection := database.GetCollection(database.StopsCollection)
	var stop *ctdf.Stop
	stopsCollection.FindOne(context.Background(), filter).Decode(&stop)

	if stop == nil {
		return nil, ErrStopNotFound
	}

	return stop, nil
}

func (s Source) AllStopsQuery(_ query.AllStops) ([]*ctdf.Stop, error) {
	stopsCollection := database.GetCollection(database.StopsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "primaryidentifier", Value: 1}})
	cursor, err := stopsCollection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	stops := []*ctdf.Stop{}
	if err := cursor.All(context.Background(), &stops); err != nil {
		return nil, err
	}

	return stops, nil
}

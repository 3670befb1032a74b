package livearrivals

import (
	"context"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s Source) StopArrivalsQuery(q query.StopArrivals) (*ctdf.StopArrivalsBoard, error) {
	collection := database.GetCollection(database.ServiceArrivalsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "serviceno", Value: 1}})
	cursor, err := collection.Find(context.Background(), q.ToBson(), opts)
	if err != nil {
		return nil, err
	}

	var serviceArrivals []*ctdf.ServiceArrivals
	if err := cursor.All(context.Background(), &serviceArrivals); err != nil {
		return nil, err
	}

	return ctdf.NewStopArrivalsBoard(q.Stop, serviceArrivals), nil
}

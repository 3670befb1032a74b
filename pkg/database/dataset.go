package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/busfares/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
)

// DatasetLoader reads the routing relations out of MongoDB
type DatasetLoader struct {
	Timeout time.Duration
}

func (l DatasetLoader) LoadDataset(ctx context.Context) (*ctdf.Dataset, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	dataset := &ctdf.Dataset{}

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) (err error) {
		dataset.Stops, err = loadCollection[ctdf.Stop](ctx, StopsCollection)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		dataset.Services, err = loadCollection[ctdf.Service](ctx, ServicesCollection)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		dataset.RouteStops, err = loadCollection[ctdf.RouteStop](ctx, RouteStopsCollection)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		dataset.FareBands, err = loadCollection[ctdf.FareBand](ctx, FareBandsCollection)
		return err
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return dataset, nil
}

func loadCollection[T any](ctx context.Context, collectionName string) ([]*T, error) {
	cursor, err := GetCollection(collectionName).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collectionName, err)
	}

	var records []*T
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", collectionName, err)
	}

	log.Debug().Str("collection", collectionName).Int("length", len(records)).Msg("Loaded collection")

	return records, nil
}

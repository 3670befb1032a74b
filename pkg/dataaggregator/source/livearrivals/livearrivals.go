package livearrivals

import (
	"reflect"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source"
)

// Source serves the arrival documents supplied by the arrivals feeds. It never predicts anything itself.
type Source struct {
}

func (s Source) GetName() string {
	return "Live Arrivals"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.StopArrivalsBoard{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.StopArrivals:
		return s.StopArrivalsQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

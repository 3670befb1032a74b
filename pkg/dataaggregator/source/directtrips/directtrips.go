package directtrips

import (
	"reflect"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source"
	"github.com/travigo/busfares/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/busfares/pkg/resolver"
)

// Source answers no-change journey plans between two stops from the in-memory routing snapshot
type Source struct {
	Store         *resolver.Store
	CachedResults *cachedresults.Cache
}

func (s Source) GetName() string {
	return "Direct Trip Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.DirectTripResults{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.DirectTrips:
		return s.DirectTripsQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

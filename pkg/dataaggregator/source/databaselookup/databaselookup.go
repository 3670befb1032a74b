package databaselookup

import (
	"reflect"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source"
)

type Source struct {
}

func (s Source) GetName() string {
	return "Database Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Stop{}),
		reflect.TypeOf([]*ctdf.Stop{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Stop:
		return s.StopQuery(q)
	case query.AllStops:
		return s.AllStopsQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

package datasources

import (
	"reflect"

	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/manager"
)

type Source struct {
}

func (s Source) GetName() string {
	return "Datasources"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(datasets.DataSet{}),
		reflect.TypeOf([]datasets.DataSet{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.DataSet:
		return s.DataSetQuery(q)
	case query.AllDataSets:
		return manager.GetRegisteredDataSets()
	default:
		return nil, source.UnsupportedSourceError
	}
}

package datasources

import (
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/manager"
)

func (s Source) DataSetQuery(q query.DataSet) (*datasets.DataSet, error) {
	dataset, err := manager.GetDataset(q.Identifier)
	if err != nil {
		return nil, err
	}

	return &dataset, nil
}

package formats

import (
	"errors"
	"io"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

type Format interface {
	ParseFile(io.Reader) error
	Import(datasets.DataSet, *ctdf.DataSource) error
}

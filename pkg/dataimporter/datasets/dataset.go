package datasets

import (
	"time"

	"github.com/travigo/busfares/pkg/util"
)

type DataSet struct {
	Identifier    string        `validate:"required"`
	DataSourceRef string        `json:"-"`
	Format        DataSetFormat `validate:"required,oneof=busfares-csv arrivals-json gtfs-realtime"`

	Provider Provider

	Source string `validate:"required"`

	UnpackBundle     BundleFormat `json:"-" validate:"omitempty,oneof=none zip gz"`
	SupportedObjects SupportedObjects
	IgnoreObjects    IgnoreObjects

	// ISO-8601 duration, eg. PT2M
	RefreshInterval string `validate:"omitempty,startswith=P"`

	// IANA zone arrival times are rendered in, UTC when unset
	Timezone string `validate:"omitempty,timezone"`
}

func (d *DataSet) GetRefreshInterval() (time.Duration, error) {
	if d.RefreshInterval == "" {
		return 0, nil
	}

	return util.ParseISO8601Interval(d.RefreshInterval)
}

// ChangesReferenceData is true when importing the dataset changes what the direct trip resolver runs over
func (d *DataSet) ChangesReferenceData() bool {
	objects := d.SupportedObjects

	return objects.Stops || objects.Services || objects.RouteStops || objects.FareBands
}

type DataSetFormat string

const (
	DataSetFormatBusFaresCSV  DataSetFormat = "busfares-csv"
	DataSetFormatArrivalsJSON DataSetFormat = "arrivals-json"
	DataSetFormatGTFSRealtime DataSetFormat = "gtfs-realtime"
)

type Provider struct {
	Name    string
	Website string
}

type BundleFormat string

const (
	BundleFormatNone BundleFormat = "none"
	BundleFormatZIP  BundleFormat = "zip"
	BundleFormatGZ   BundleFormat = "gz"
)

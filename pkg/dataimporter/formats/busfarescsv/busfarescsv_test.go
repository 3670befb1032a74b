package busfarescsv

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
)

func bundle(t *testing.T, files map[string]string) *bytes.Buffer {
	t.Helper()

	buffer := &bytes.Buffer{}
	writer := zip.NewWriter(buffer)

	for name, content := range files {
		file, err := writer.Create(name)
		require.NoError(t, err)

		_, err = file.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return buffer
}

var sampleFiles = map[string]string{
	"busfares/stops.csv": "bus_stop_code,description,road_name\n" +
		"01012,Hotel Grand Pacific,Victoria St\n" +
		",No Code,Nowhere Rd\n" +
		"01013,St. Joseph's Ch,Victoria St\n",
	"busfares/services.csv": "service_no,direction,operator,category\n" +
		"10,1,SBST,TRUNK\n" +
		"960,1,SMRT,EXPRESS\n",
	"busfares/route_stops.csv": "service_no,direction,bus_stop_code,stop_sequence,distance_km\n" +
		"10,1,01012,1,0\n" +
		"10,1,01013,2,0.6\n" +
		"960,1,01012,1,0\n",
	"busfares/fare_bands.csv": "category,min_km,max_km,adult_card_cents,adult_cash_cents,senior_card_cents,senior_cash_cents,student_card_cents,student_cash_cents,workfare_card_cents,workfare_cash_cents\n" +
		"TRUNK,0,3.2,109,170,70,,40,NULL,75,\n",
	"busfares/README.txt": "ignored",
}

func TestParseAndConvert(t *testing.T) {
	busFares := &BusFares{}
	require.NoError(t, busFares.ParseFile(bundle(t, sampleFiles)))

	assert.Len(t, busFares.Stops, 3)
	assert.Len(t, busFares.Services, 2)
	assert.Len(t, busFares.RouteStops, 3)
	assert.Len(t, busFares.FareBands, 1)

	datasource := &ctdf.DataSource{DatasetID: "sg-lta-reference", Timestamp: "1700000000"}
	dataset := datasets.DataSet{
		Identifier: "sg-lta-reference",
		IgnoreObjects: datasets.IgnoreObjects{
			Services: datasets.IgnoreObjectServices{ByOperator: []string{"SMRT"}},
		},
	}

	converted, err := busFares.ToCTDF(dataset, datasource)
	require.NoError(t, err)

	require.Len(t, converted.Stops, 2)
	assert.Equal(t, "01012", converted.Stops[0].PrimaryIdentifier)
	assert.Equal(t, "Victoria St", converted.Stops[0].RoadName)
	assert.Equal(t, datasource, converted.Stops[0].DataSource)

	require.Len(t, converted.Services, 1)
	assert.Equal(t, ctdf.ServiceKey{ServiceNo: "10", Direction: 1}, converted.Services[0].Key())

	require.Len(t, converted.RouteStops, 2)
	assert.Equal(t, 0.6, converted.RouteStops[1].DistanceKM)
	assert.Equal(t, 2, converted.RouteStops[1].StopSequence)

	require.Len(t, converted.FareBands, 1)
	fareBand := converted.FareBands[0]
	assert.Equal(t, 3.2, fareBand.MaxKM)
	assert.Equal(t, 109, *fareBand.AdultCardCents)
	assert.Equal(t, 170, *fareBand.AdultCashCents)
	assert.Nil(t, fareBand.SeniorCashCents)
	assert.Nil(t, fareBand.StudentCashCents)
	assert.Nil(t, fareBand.WorkfareCashCents)
	assert.Equal(t, 75, *fareBand.WorkfareCardCents)
}

func TestConvertRejectsBadCents(t *testing.T) {
	busFares := &BusFares{
		FareBands: []FareBand{
			{Category: "TRUNK", MinKM: 0, MaxKM: 3.2, AdultCardCents: "1.09"},
		},
	}

	_, err := busFares.ToCTDF(datasets.DataSet{}, &ctdf.DataSource{})
	assert.ErrorContains(t, err, "fare_bands.csv row 2")
}

func TestParseRejectsNonZip(t *testing.T) {
	busFares := &BusFares{}

	err := busFares.ParseFile(bytes.NewBufferString("bus_stop_code\n01012\n"))
	assert.Error(t, err)
}

package busfarescsv

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/util"
)

// BusFares is a zip bundle of stops.csv, services.csv, route_stops.csv & fare_bands.csv
type BusFares struct {
	Stops      []Stop
	Services   []Service
	RouteStops []RouteStop
	FareBands  []FareBand
}

func (b *BusFares) ParseFile(reader io.Reader) error {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r
	})

	fileMap := map[string]interface{}{
		"stops.csv":       &b.Stops,
		"services.csv":    &b.Services,
		"route_stops.csv": &b.RouteStops,
		"fare_bands.csv":  &b.FareBands,
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return fmt.Errorf("opening bundle: %w", err)
	}

	for _, zipFile := range archive.File {
		fileName := zipFile.Name
		if slash := strings.LastIndex(fileName, "/"); slash >= 0 {
			fileName = fileName[slash+1:]
		}

		destination, exists := fileMap[fileName]
		if !exists {
			if fileName != "" {
				log.Warn().Str("file", zipFile.Name).Msg("Unknown busfares file")
			}
			continue
		}

		log.Info().Str("file", fileName).Msg("Loading file")

		fileReader, err := zipFile.Open()
		if err != nil {
			return err
		}

		err = gocsv.Unmarshal(fileReader, destination)
		fileReader.Close()
		if err != nil {
			log.Error().Str("file", fileName).Err(err).Msg("Failed to parse csv file")
			return fmt.Errorf("parsing %s: %w", fileName, err)
		}
	}

	return nil
}

// ToCTDF converts the parsed records, dropping the ones the dataset is configured to ignore
func (b *BusFares) ToCTDF(dataset datasets.DataSet, datasource *ctdf.DataSource) (*ctdf.Dataset, error) {
	converted := &ctdf.Dataset{}
	ignoredServices := map[ctdf.ServiceKey]bool{}

	for _, record := range b.Stops {
		if strings.TrimSpace(record.PrimaryIdentifier) == "" {
			log.Warn().Str("dataset", dataset.Identifier).Msg("Skipping stop without a code")
			continue
		}

		stop := &ctdf.Stop{DataSource: datasource}
		if err := copier.Copy(stop, &record); err != nil {
			return nil, err
		}

		converted.Stops = append(converted.Stops, stop)
	}

	for _, record := range b.Services {
		service := &ctdf.Service{DataSource: datasource}
		if err := copier.Copy(service, &record); err != nil {
			return nil, err
		}

		if util.ContainsString(dataset.IgnoreObjects.Services.ByOperator, service.Operator) {
			ignoredServices[service.Key()] = true
			continue
		}

		converted.Services = append(converted.Services, service)
	}

	for _, record := range b.RouteStops {
		routeStop := &ctdf.RouteStop{DataSource: datasource}
		if err := copier.Copy(routeStop, &record); err != nil {
			return nil, err
		}

		if ignoredServices[routeStop.ServiceKey()] {
			continue
		}

		converted.RouteStops = append(converted.RouteStops, routeStop)
	}

	for i, record := range b.FareBands {
		fareBand, err := record.toCTDF()
		if err != nil {
			return nil, fmt.Errorf("fare_bands.csv row %d: %w", i+2, err)
		}
		fareBand.DataSource = datasource

		converted.FareBands = append(converted.FareBands, fareBand)
	}

	return converted, nil
}

func (f *FareBand) toCTDF() (*ctdf.FareBand, error) {
	fareBand := &ctdf.FareBand{
		Category: f.Category,
		MinKM:    f.MinKM,
		MaxKM:    f.MaxKM,
	}

	columns := []struct {
		value       string
		destination **int
	}{
		{f.AdultCardCents, &fareBand.AdultCardCents},
		{f.AdultCashCents, &fareBand.AdultCashCents},
		{f.SeniorCardCents, &fareBand.SeniorCardCents},
		{f.SeniorCashCents, &fareBand.SeniorCashCents},
		{f.StudentCardCents, &fareBand.StudentCardCents},
		{f.StudentCashCents, &fareBand.StudentCashCents},
		{f.WorkfareCardCents, &fareBand.WorkfareCardCents},
		{f.WorkfareCashCents, &fareBand.WorkfareCashCents},
	}

	for _, column := range columns {
		cents, err := parseCents(column.value)
		if err != nil {
			return nil, err
		}

		*column.destination = cents
	}

	return fareBand, nil
}

// parseCents treats a blank or NULL cell as an absent price
func parseCents(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "null") {
		return nil, nil
	}

	cents, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid cents value %q: %w", value, err)
	}

	return &cents, nil
}

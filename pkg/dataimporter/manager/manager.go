package manager

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/formats"
	"github.com/travigo/busfares/pkg/dataimporter/formats/arrivalsjson"
	"github.com/travigo/busfares/pkg/dataimporter/formats/busfarescsv"
	"github.com/travigo/busfares/pkg/dataimporter/formats/gtfs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "time/tzdata"
)

var ErrDatasetNotFound = errors.New("dataset could not be found")

const downloadTimeout = 5 * time.Minute

func GetDataset(identifier string) (datasets.DataSet, error) {
	registered, err := GetRegisteredDataSets()
	if err != nil {
		return datasets.DataSet{}, err
	}

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, identifier)
}

func GetFormat(dataset *datasets.DataSet, forceImport bool) (formats.Format, error) {
	switch dataset.Format {
	case datasets.DataSetFormatBusFaresCSV:
		return &busfarescsv.BusFares{}, nil
	case datasets.DataSetFormatArrivalsJSON:
		return &arrivalsjson.Arrivals{Force: forceImport}, nil
	case datasets.DataSetFormatGTFSRealtime:
		location := time.UTC
		if dataset.Timezone != "" {
			var err error
			location, err = time.LoadLocation(dataset.Timezone)
			if err != nil {
				return nil, err
			}
		}

		return &gtfs.Realtime{Location: location}, nil
	default:
		return nil, fmt.Errorf("%w: %s", formats.ErrUnsupportedFormat, dataset.Format)
	}
}

func ImportDataset(dataset *datasets.DataSet, forceImport bool) error {
	log.Info().Str("id", dataset.Identifier).Str("format", string(dataset.Format)).Msg("Importing dataset")

	format, err := GetFormat(dataset, forceImport)
	if err != nil {
		return err
	}

	body, err := readSource(dataset.Source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dataset.Source, err)
	}

	body, err = unpackBundle(dataset.UnpackBundle, body)
	if err != nil {
		return fmt.Errorf("unpacking %s: %w", dataset.Source, err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(body))

	if !forceImport && dataset.ChangesReferenceData() && datasetUnchanged(dataset.Identifier, hash) {
		log.Info().Str("id", dataset.Identifier).Msg("Dataset not changed")
		return nil
	}

	if err := format.ParseFile(bytes.NewReader(body)); err != nil {
		return err
	}

	datasource := &ctdf.DataSource{
		OriginalFormat: string(dataset.Format),
		Provider:       dataset.Provider.Name,
		DatasetID:      dataset.Identifier,
		Timestamp:      fmt.Sprintf("%d", time.Now().UnixNano()),
	}

	if err := format.Import(*dataset, datasource); err != nil {
		return err
	}

	if dataset.ChangesReferenceData() {
		recordDatasetVersion(dataset.Identifier, hash)

		if err := PublishDatasetUpdate(dataset, datasource); err != nil {
			log.Error().Err(err).Str("id", dataset.Identifier).Msg("Failed to publish dataset update")
		}
	}

	return nil
}

func datasetUnchanged(identifier string, hash string) bool {
	var datasetVersion *ctdf.DatasetVersion
	database.GetCollection(database.DatasetVersionsCollection).FindOne(context.Background(), bson.M{"dataset": identifier}).Decode(&datasetVersion)

	return datasetVersion != nil && datasetVersion.Hash == hash
}

func recordDatasetVersion(identifier string, hash string) {
	datasetVersion := ctdf.DatasetVersion{
		Dataset:      identifier,
		Hash:         hash,
		LastModified: time.Now(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := database.GetCollection(database.DatasetVersionsCollection).UpdateOne(
		context.Background(),
		bson.M{"dataset": identifier},
		bson.M{"$set": datasetVersion},
		opts,
	)
	if err != nil {
		log.Error().Err(err).Str("id", identifier).Msg("Failed to record dataset version")
	}
}

func readSource(source string) ([]byte, error) {
	if !isValidUrl(source) {
		return os.ReadFile(source)
	}

	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("user-agent", "curl/7.54.1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// unpackBundle returns the single file held in a gz or zip bundle
func unpackBundle(bundle datasets.BundleFormat, body []byte) ([]byte, error) {
	switch bundle {
	case datasets.BundleFormatNone, "":
		return body, nil
	case datasets.BundleFormatGZ:
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer reader.Close()

		return io.ReadAll(reader)
	case datasets.BundleFormatZIP:
		archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
		if err != nil {
			return nil, err
		}

		for _, zipFile := range archive.File {
			if zipFile.FileInfo().IsDir() {
				continue
			}

			reader, err := zipFile.Open()
			if err != nil {
				return nil, err
			}
			defer reader.Close()

			return io.ReadAll(reader)
		}

		return nil, errors.New("zip bundle is empty")
	default:
		return nil, fmt.Errorf("cannot handle bundle type %s", bundle)
	}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

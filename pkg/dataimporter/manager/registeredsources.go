package manager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"gopkg.in/yaml.v3"
)

var RegistryDirectory = "data/datasources/"

var validate = validator.New()

func GetRegisteredDataSets() ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet
	seenIdentifiers := map[string]string{}

	err := filepath.Walk(RegistryDirectory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading datasource file")

			datasourceYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(datasourceYaml))

			for {
				var datasource datasets.DataSource
				err := decoder.Decode(&datasource)
				if errors.Is(err, io.EOF) {
					break
				} else if err != nil {
					return fmt.Errorf("decoding %s: %w", path, err)
				}

				if err := validate.Struct(datasource); err != nil {
					return fmt.Errorf("invalid datasource in %s: %w", path, err)
				}

				for _, dataset := range datasource.Datasets {
					dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
					dataset.DataSourceRef = datasource.Identifier
					if dataset.Provider.Name == "" {
						dataset.Provider = datasource.Provider
					}
					if dataset.UnpackBundle == "" {
						dataset.UnpackBundle = datasets.BundleFormatNone
					}

					if previousPath, exists := seenIdentifiers[dataset.Identifier]; exists {
						return fmt.Errorf("dataset %s in %s is already registered in %s", dataset.Identifier, path, previousPath)
					}
					seenIdentifiers[dataset.Identifier] = path

					registeredDatasets = append(registeredDatasets, dataset)
				}
			}

			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading dataset registry: %w", err)
	}

	return registeredDatasets, nil
}

package insertrecords

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var Directory = "data/insert-records/"

var validate = validator.New()

func Load() ([]InsertDefinition, error) {
	var definitions []InsertDefinition

	err := filepath.Walk(Directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading insert-record file")

			insertYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(insertYaml))

			for {
				var insertDefinition InsertDefinition
				err := decoder.Decode(&insertDefinition)
				if errors.Is(err, io.EOF) {
					break
				} else if err != nil {
					return fmt.Errorf("decoding %s: %w", path, err)
				}

				if err := validate.Struct(insertDefinition); err != nil {
					return fmt.Errorf("invalid insert definition in %s: %w", path, err)
				}
				if !slices.Contains(allowedCollections, insertDefinition.Collection) {
					return fmt.Errorf("insert definition in %s targets unknown collection %s", path, insertDefinition.Collection)
				}

				definitions = append(definitions, insertDefinition)
			}

			return nil
		})
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	return definitions, err
}

func Insert() error {
	definitions, err := Load()
	if err != nil {
		return err
	}

	for _, definition := range definitions {
		if err := definition.Upsert(); err != nil {
			return err
		}
	}

	log.Info().Int("length", len(definitions)).Msg("Applied insert-records")

	return nil
}

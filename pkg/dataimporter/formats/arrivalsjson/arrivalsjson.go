package arrivalsjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/formats"
	"github.com/travigo/busfares/pkg/util"
)

// Arrivals reads arrival documents exported from a document store, either as one JSON array or as
// one document per line
type Arrivals struct {
	// Force imports even when the collection already holds arrivals
	Force bool

	ServiceArrivals []*ctdf.ServiceArrivals
}

func (a *Arrivals) ParseFile(reader io.Reader) error {
	bufferedReader := bufio.NewReader(reader)

	documents, err := decodeDocuments(bufferedReader)
	if err != nil {
		return err
	}

	a.ServiceArrivals = make([]*ctdf.ServiceArrivals, 0, len(documents))

	for i, document := range documents {
		// Exported documents carry the source store's own _id which means nothing here
		delete(document, "_id")

		encoded, err := json.Marshal(document)
		if err != nil {
			return err
		}

		var serviceArrivals ctdf.ServiceArrivals
		if err := json.Unmarshal(encoded, &serviceArrivals); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}

		a.ServiceArrivals = append(a.ServiceArrivals, &serviceArrivals)
	}

	util.InPlaceFilter(&a.ServiceArrivals, func(serviceArrivals *ctdf.ServiceArrivals) bool {
		return strings.TrimSpace(serviceArrivals.StopRef) != ""
	})

	return nil
}

func decodeDocuments(reader *bufio.Reader) ([]map[string]any, error) {
	var documents []map[string]any

	firstByte, err := peekFirstNonSpace(reader)
	if errors.Is(err, io.EOF) {
		return documents, nil
	} else if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(reader)

	if firstByte == '[' {
		if err := decoder.Decode(&documents); err != nil {
			return nil, fmt.Errorf("decoding arrivals array: %w", err)
		}

		return documents, nil
	}

	for {
		var document map[string]any
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding arrivals document %d: %w", len(documents), err)
		}

		documents = append(documents, document)
	}

	return documents, nil
}

func peekFirstNonSpace(reader *bufio.Reader) (byte, error) {
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}

		if len(bytes.TrimSpace([]byte{b})) == 0 {
			continue
		}

		return b, reader.UnreadByte()
	}
}

func (a *Arrivals) Import(dataset datasets.DataSet, datasource *ctdf.DataSource) error {
	if !dataset.SupportedObjects.Arrivals {
		return errors.New("This format requires arrivals to be enabled")
	}

	if !a.Force {
		existing, err := database.GetCollection(database.ServiceArrivalsCollection).EstimatedDocumentCount(context.Background())
		if err != nil {
			return err
		}

		if existing > 0 {
			log.Info().Str("dataset", dataset.Identifier).Int64("existing", existing).Msg("Arrivals already imported, skipping")
			return nil
		}
	}

	return formats.ImportServiceArrivals(a.ServiceArrivals, datasource)
}

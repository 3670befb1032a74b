package manager

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/redis_client"
)

// DatasetUpdatesQueue prefixes the queue each running API instance consumes dataset updates from
const DatasetUpdatesQueue = "dataset-updates"

// DatasetUpdate is published after a dataset changes any of the routing relations
type DatasetUpdate struct {
	Dataset   string
	Format    string
	Timestamp string
}

func PublishDatasetUpdate(dataset *datasets.DataSet, datasource *ctdf.DataSource) error {
	if redis_client.QueueConnection == nil {
		return errors.New("redis queue connection is not open")
	}

	payload, err := json.Marshal(DatasetUpdate{
		Dataset:   dataset.Identifier,
		Format:    string(dataset.Format),
		Timestamp: datasource.Timestamp,
	})
	if err != nil {
		return err
	}

	openQueues, err := redis_client.QueueConnection.GetOpenQueues()
	if err != nil {
		return err
	}

	published := 0
	for _, queueName := range openQueues {
		if !strings.HasPrefix(queueName, DatasetUpdatesQueue+"-") {
			continue
		}

		queue, err := redis_client.QueueConnection.OpenQueue(queueName)
		if err != nil {
			return err
		}

		if err := queue.PublishBytes(payload); err != nil {
			return err
		}
		published++
	}

	log.Info().Str("id", dataset.Identifier).Int("queues", published).Msg("Published dataset update")

	return nil
}

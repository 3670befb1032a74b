package snapshotwatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/dataimporter/manager"
	"github.com/travigo/busfares/pkg/resolver"
)

// ReloadConsumer reloads the store once per batch of dataset update notifications
type ReloadConsumer struct {
	Store         *resolver.Store
	ReloadTimeout time.Duration
}

func (c *ReloadConsumer) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		var update manager.DatasetUpdate
		if err := json.Unmarshal([]byte(delivery.Payload()), &update); err != nil {
			log.Warn().Err(err).Msg("Ignoring malformed dataset update")
			continue
		}

		log.Info().Str("dataset", update.Dataset).Str("timestamp", update.Timestamp).Msg("Dataset updated")
	}

	ctx := context.Background()
	if c.ReloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.ReloadTimeout)
		defer cancel()
	}

	if err := c.Store.Reload(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to reload routing dataset")

		if errs := batch.Reject(); len(errs) > 0 {
			log.Error().Interface("errors", errs).Msg("Failed to reject dataset updates")
		}
		return
	}

	if errs := batch.Ack(); len(errs) > 0 {
		log.Error().Interface("errors", errs).Msg("Failed to ack dataset updates")
	}
}

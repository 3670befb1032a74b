package formats

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/database"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BulkWriter is the part of a mongo collection the batch queue writes through
type BulkWriter interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

func NewDatabaseBatchProcessingQueue(collection string, batchTimeout time.Duration, batchSize int) *DatabaseBatchProcessingQueue {
	return &DatabaseBatchProcessingQueue{
		Collection:   collection,
		BatchTimeout: batchTimeout,
		BatchSize:    batchSize,
		items:        make(chan mongo.WriteModel, batchSize),
		done:         make(chan struct{}),
	}
}

// DatabaseBatchProcessingQueue groups write models into BulkWrite calls, flushing when a batch is
// full or BatchTimeout passes
type DatabaseBatchProcessingQueue struct {
	Collection   string
	BatchTimeout time.Duration
	BatchSize    int

	Writer BulkWriter

	items chan mongo.WriteModel
	done  chan struct{}

	errLock sync.Mutex
	err     error

	written int
}

func (b *DatabaseBatchProcessingQueue) Add(item mongo.WriteModel) {
	b.items <- item
}

func (b *DatabaseBatchProcessingQueue) Process() {
	if b.Writer == nil {
		b.Writer = database.GetCollection(b.Collection)
	}

	go func(b *DatabaseBatchProcessingQueue) {
		defer close(b.done)

		ticker := time.NewTicker(b.BatchTimeout)
		defer ticker.Stop()

		batchItems := []mongo.WriteModel{}

		for {
			select {
			case item, ok := <-b.items:
				if !ok {
					b.flush(batchItems)
					return
				}

				batchItems = append(batchItems, item)
				if len(batchItems) >= b.BatchSize {
					b.flush(batchItems)
					batchItems = []mongo.WriteModel{}
				}
			case <-ticker.C:
				b.flush(batchItems)
				batchItems = []mongo.WriteModel{}
			}
		}
	}(b)
}

func (b *DatabaseBatchProcessingQueue) flush(batchItems []mongo.WriteModel) {
	if len(batchItems) == 0 {
		return
	}

	log.Info().Str("collection", b.Collection).Int("length", len(batchItems)).Msg("Bulk write")

	_, err := b.Writer.BulkWrite(context.Background(), batchItems, &options.BulkWriteOptions{})
	if err != nil {
		log.Error().Str("collection", b.Collection).Err(err).Msg("Failed to bulk write")

		b.errLock.Lock()
		if b.err == nil {
			b.err = err
		}
		b.errLock.Unlock()

		return
	}

	b.written += len(batchItems)
}

// Wait stops accepting items, writes whatever is left and returns the first bulk write error
func (b *DatabaseBatchProcessingQueue) Wait() (int, error) {
	close(b.items)
	<-b.done

	log.Info().Str("collection", b.Collection).Int("written", b.written).Msg("Nothing left to process in queue")

	b.errLock.Lock()
	defer b.errLock.Unlock()

	return b.written, b.err
}

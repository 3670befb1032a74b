package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
)

var ErrNoSnapshot = errors.New("no routing dataset has been loaded")

type DatasetLoader interface {
	LoadDataset(context.Context) (*ctdf.Dataset, error)
}

// Store hands out the current Snapshot. Reloads build a complete new Snapshot before swapping
// it in, so a query sees either the old or the new dataset and never a mix.
type Store struct {
	Loader DatasetLoader

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

func NewStore(loader DatasetLoader) *Store {
	return &Store{Loader: loader}
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Store) Swap(snapshot *Snapshot) *Snapshot {
	return s.current.Swap(snapshot)
}

func (s *Store) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	startTime := time.Now()

	dataset, err := s.Loader.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("loading routing dataset: %w", err)
	}

	snapshot := NewSnapshot(dataset)
	previous := s.Swap(snapshot)

	stats := snapshot.Stats()
	logger := log.With().
		Str("version", snapshot.Version).
		Int("stops", stats.Stops).
		Int("services", stats.Services).
		Int("routestops", stats.RouteStops).
		Int("farebands", stats.FareBands).
		Str("duration", time.Since(startTime).String()).
		Logger()

	if previous != nil && previous.Version == snapshot.Version {
		logger.Debug().Msg("Routing dataset reloaded without changes")
	} else {
		logger.Info().Msg("Routing dataset loaded")
	}

	return nil
}

func (s *Store) Resolve(fromStop string, toStop string, riderType string, payMode string) ([]*ctdf.TripCandidate, error) {
	snapshot := s.Snapshot()
	if snapshot == nil {
		return nil, ErrNoSnapshot
	}

	return snapshot.Resolve(fromStop, toStop, riderType, payMode), nil
}

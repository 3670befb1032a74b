package directtrips

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/resolver"
	"github.com/travigo/busfares/pkg/util"
)

func (s Source) DirectTripsQuery(q query.DirectTrips) (*ctdf.DirectTripResults, error) {
	snapshot := s.Store.Snapshot()
	if snapshot == nil {
		return nil, resolver.ErrNoSnapshot
	}

	// The snapshot version is part of the path so a reload never serves stale results
	cacheItemPath := fmt.Sprintf(
		"cachedresults/directtrips/%s/%s/%s/%s/%s",
		snapshot.Version,
		util.CacheKeyPart(q.OriginStop),
		util.CacheKeyPart(q.DestinationStop),
		util.CacheKeyPart(strings.ToLower(q.RiderType)),
		util.CacheKeyPart(strings.ToLower(q.PayMode)),
	)

	var results ctdf.DirectTripResults
	if s.CachedResults.Get(context.Background(), cacheItemPath, &results) {
		return &results, nil
	}

	candidates := snapshot.Resolve(q.OriginStop, q.DestinationStop, q.RiderType, q.PayMode)

	results = ctdf.DirectTripResults{
		Candidates: candidates,
		Summary:    ctdf.SummariseTrips(candidates),
	}

	if err := s.CachedResults.Set(context.Background(), cacheItemPath, results); err != nil {
		log.Error().Err(err).Str("path", cacheItemPath).Msg("Failed to cache direct trip results")
	}

	return &results, nil
}

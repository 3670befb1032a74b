package global

import (
	"github.com/travigo/busfares/pkg/dataaggregator"
	"github.com/travigo/busfares/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/busfares/pkg/dataaggregator/source/databaselookup"
	"github.com/travigo/busfares/pkg/dataaggregator/source/datasources"
	"github.com/travigo/busfares/pkg/dataaggregator/source/directtrips"
	"github.com/travigo/busfares/pkg/dataaggregator/source/livearrivals"
	"github.com/travigo/busfares/pkg/resolver"
)

func Setup(store *resolver.Store) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	dataaggregator.GlobalAggregator.RegisterSource(databaselookup.Source{})

	cachedResults := &cachedresults.Cache{}
	cachedResults.Setup()
	dataaggregator.GlobalAggregator.RegisterSource(directtrips.Source{
		Store:         store,
		CachedResults: cachedResults,
	})

	dataaggregator.GlobalAggregator.RegisterSource(livearrivals.Source{})
	dataaggregator.GlobalAggregator.RegisterSource(datasources.Source{})
}

package resolver

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/travigo/busfares/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// Snapshot is an immutable, indexed copy of a Dataset. It is never modified after NewSnapshot
// returns so it can be shared between any number of concurrent queries.
type Snapshot struct {
	Version  string
	LoadedAt time.Time

	stops        map[string]*ctdf.Stop
	orderedStops []*ctdf.Stop

	services map[ctdf.ServiceKey]*ctdf.Service

	// Ordered by service number, direction then stop sequence
	routeStopsByStop map[string][]*ctdf.RouteStop

	// Keyed by ctdf.CategoryKey and ordered by MinKM
	fareBandsByCategory map[string][]*ctdf.FareBand

	routeStopCount int
}

func NewSnapshot(dataset *ctdf.Dataset) *Snapshot {
	snapshot := &Snapshot{
		Version:             datasetVersion(dataset),
		LoadedAt:            time.Now(),
		stops:               map[string]*ctdf.Stop{},
		services:            map[ctdf.ServiceKey]*ctdf.Service{},
		routeStopsByStop:    map[string][]*ctdf.RouteStop{},
		fareBandsByCategory: map[string][]*ctdf.FareBand{},
		routeStopCount:      len(dataset.RouteStops),
	}

	for _, stop := range dataset.Stops {
		snapshot.stops[stop.PrimaryIdentifier] = stop
	}
	snapshot.orderedStops = make([]*ctdf.Stop, 0, len(snapshot.stops))
	for _, stop := range snapshot.stops {
		snapshot.orderedStops = append(snapshot.orderedStops, stop)
	}
	slices.SortFunc(snapshot.orderedStops, func(a, b *ctdf.Stop) int {
		return strings.Compare(a.PrimaryIdentifier, b.PrimaryIdentifier)
	})

	for _, service := range dataset.Services {
		snapshot.services[service.Key()] = service
	}

	for _, routeStop := range dataset.RouteStops {
		snapshot.routeStopsByStop[routeStop.StopRef] = append(snapshot.routeStopsByStop[routeStop.StopRef], routeStop)
	}
	for _, routeStops := range snapshot.routeStopsByStop {
		slices.SortStableFunc(routeStops, compareRouteStops)
	}

	for _, fareBand := range dataset.FareBands {
		category := ctdf.CategoryKey(fareBand.Category)
		snapshot.fareBandsByCategory[category] = append(snapshot.fareBandsByCategory[category], fareBand)
	}
	for _, fareBands := range snapshot.fareBandsByCategory {
		slices.SortStableFunc(fareBands, func(a, b *ctdf.FareBand) int {
			switch {
			case a.MinKM < b.MinKM:
				return -1
			case a.MinKM > b.MinKM:
				return 1
			default:
				return 0
			}
		})
	}

	return snapshot
}

func compareRouteStops(a, b *ctdf.RouteStop) int {
	if c := strings.Compare(a.ServiceNo, b.ServiceNo); c != 0 {
		return c
	}
	if a.Direction != b.Direction {
		return a.Direction - b.Direction
	}

	return a.StopSequence - b.StopSequence
}

func (s *Snapshot) Stop(identifier string) *ctdf.Stop {
	return s.stops[identifier]
}

// Stops returns every stop ordered by stop code
func (s *Snapshot) Stops() []*ctdf.Stop {
	return s.orderedStops
}

func (s *Snapshot) Service(key ctdf.ServiceKey) *ctdf.Service {
	return s.services[key]
}

func (s *Snapshot) FareBands(category string) []*ctdf.FareBand {
	return s.fareBandsByCategory[ctdf.CategoryKey(category)]
}

type SnapshotStats struct {
	Stops      int
	Services   int
	RouteStops int
	FareBands  int
}

func (s *Snapshot) Stats() SnapshotStats {
	stats := SnapshotStats{
		Stops:      len(s.stops),
		Services:   len(s.services),
		RouteStops: s.routeStopCount,
	}

	for _, fareBands := range s.fareBandsByCategory {
		stats.FareBands += len(fareBands)
	}

	return stats
}

func datasetVersion(dataset *ctdf.Dataset) string {
	hash := sha256.New()

	for _, stop := range dataset.Stops {
		fmt.Fprintf(hash, "stop %s %s %s\n", stop.PrimaryIdentifier, stop.Description, stop.RoadName)
	}
	for _, service := range dataset.Services {
		fmt.Fprintf(hash, "service %s %d %s %s\n", service.ServiceNo, service.Direction, service.Operator, service.Category)
	}
	for _, routeStop := range dataset.RouteStops {
		fmt.Fprintf(hash, "routestop %s %d %s %d %f\n", routeStop.ServiceNo, routeStop.Direction, routeStop.StopRef, routeStop.StopSequence, routeStop.DistanceKM)
	}
	for _, fareBand := range dataset.FareBands {
		fmt.Fprintf(hash, "fareband %s %f %f", fareBand.Category, fareBand.MinKM, fareBand.MaxKM)
		for _, price := range []*int{
			fareBand.AdultCardCents, fareBand.AdultCashCents,
			fareBand.SeniorCardCents, fareBand.SeniorCashCents,
			fareBand.StudentCardCents, fareBand.StudentCashCents,
			fareBand.WorkfareCardCents, fareBand.WorkfareCashCents,
		} {
			if price == nil {
				fmt.Fprint(hash, " -")
			} else {
				fmt.Fprintf(hash, " %d", *price)
			}
		}
		fmt.Fprintln(hash)
	}

	return fmt.Sprintf("%x", hash.Sum(nil))[:16]
}

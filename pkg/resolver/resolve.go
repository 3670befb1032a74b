package resolver

import (
	"math"
	"strings"

	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	minutesPerKM  = 3.2
	minutesPerHop = 5.5
)

// directTrip is one service variant that passes through both stops, origin first
type directTrip struct {
	Service *ctdf.Service
	From    *ctdf.RouteStop
	To      *ctdf.RouteStop
}

func (t *directTrip) Hops() int {
	return t.To.StopSequence - t.From.StopSequence
}

func (t *directTrip) Distance() float64 {
	return t.To.DistanceKM - t.From.DistanceKM
}

// Resolve lists every direct trip from fromStop to toStop, priced for the rider type & pay mode
// and ordered cheapest first. Stops that don't exist or aren't connected give an empty list.
func (s *Snapshot) Resolve(fromStop string, toStop string, riderType string, payMode string) []*ctdf.TripCandidate {
	fareCell := ctdf.LookupFareCell(riderType, payMode)

	candidates := []*ctdf.TripCandidate{}

	for _, trip := range s.directTrips(fromStop, toStop) {
		travelKM := util.RoundTo(trip.Distance(), 2)
		estMinutes := estimateMinutes(trip.Distance(), trip.Hops())

		fareBands := s.matchingFareBands(trip.Service.Category, travelKM)
		if len(fareBands) == 0 {
			fareBands = []*ctdf.FareBand{nil}
		}

		for _, fareBand := range fareBands {
			candidate := &ctdf.TripCandidate{
				ServiceNo:  trip.Service.ServiceNo,
				Direction:  trip.Service.Direction,
				Operator:   trip.Service.Operator,
				Category:   trip.Service.Category,
				FromStop:   fromStop,
				ToStop:     toStop,
				Hops:       trip.Hops(),
				TravelKM:   travelKM,
				EstMinutes: estMinutes,
			}

			candidate.FareCents, candidate.FareSource = fareCell.Charge(fareBand)
			if candidate.FareCents != nil {
				fare := ctdf.FormatFare(*candidate.FareCents)
				candidate.Fare = &fare
			}

			candidates = append(candidates, candidate)
		}
	}

	sortCandidates(candidates)

	return candidates
}

func (s *Snapshot) directTrips(fromStop string, toStop string) []*directTrip {
	destinations := map[ctdf.ServiceKey][]*ctdf.RouteStop{}
	for _, routeStop := range s.routeStopsByStop[toStop] {
		destinations[routeStop.ServiceKey()] = append(destinations[routeStop.ServiceKey()], routeStop)
	}

	var trips []*directTrip

	for _, origin := range s.routeStopsByStop[fromStop] {
		service := s.services[origin.ServiceKey()]
		if service == nil {
			continue
		}

		for _, destination := range destinations[origin.ServiceKey()] {
			if destination.StopSequence <= origin.StopSequence {
				continue
			}

			trips = append(trips, &directTrip{
				Service: service,
				From:    origin,
				To:      destination,
			})
		}
	}

	return trips
}

// Distance data is missing or broken for some route variants so fall back to counting stops
func estimateMinutes(distanceKM float64, hops int) int {
	if distanceKM > 0 {
		return int(math.Round(minutesPerKM * distanceKM))
	}

	return int(math.Round(minutesPerHop * float64(hops)))
}

func (s *Snapshot) matchingFareBands(category string, travelKM float64) []*ctdf.FareBand {
	var matches []*ctdf.FareBand

	for _, fareBand := range s.FareBands(category) {
		if fareBand.Covers(travelKM) {
			matches = append(matches, fareBand)
		}
	}

	return matches
}

func sortCandidates(candidates []*ctdf.TripCandidate) {
	slices.SortStableFunc(candidates, compareCandidates)
}

// Fares compare as their formatted text with unpriced trips last, then by hops, then by distance
func compareCandidates(a, b *ctdf.TripCandidate) int {
	switch {
	case a.Fare != nil && b.Fare == nil:
		return -1
	case a.Fare == nil && b.Fare != nil:
		return 1
	case a.Fare != nil && b.Fare != nil:
		if c := strings.Compare(*a.Fare, *b.Fare); c != 0 {
			return c
		}
	}

	if a.Hops != b.Hops {
		return a.Hops - b.Hops
	}

	switch {
	case a.TravelKM < b.TravelKM:
		return -1
	case a.TravelKM > b.TravelKM:
		return 1
	default:
		return 0
	}
}

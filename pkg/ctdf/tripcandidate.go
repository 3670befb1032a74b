package ctdf

import (
	"github.com/travigo/busfares/pkg/util"
)

type TripCandidate struct {
	ServiceNo string `json:"service_no" groups:"basic"`
	Direction int    `json:"direction" groups:"basic"`
	Operator  string `json:"operator" groups:"basic"`
	Category  string `json:"category" groups:"detailed"`

	FromStop string `json:"from_stop" groups:"basic"`
	ToStop   string `json:"to_stop" groups:"basic"`

	Hops       int     `json:"hops" groups:"basic"`
	TravelKM   float64 `json:"travel_km" groups:"basic"`
	EstMinutes int     `json:"est_minutes" groups:"basic"`

	FareCents  *int    `json:"fare_cents,omitempty" groups:"detailed"`
	Fare       *string `json:"fare,omitempty" groups:"basic"`
	FareSource string  `json:"fare_source" groups:"basic"`
}

type TripSummary struct {
	DirectServices int     `json:"direct_services" groups:"basic"`
	CheapestFare   *string `json:"cheapest_fare,omitempty" groups:"basic"`
	FastestETA     *int    `json:"fastest_eta,omitempty" groups:"basic"`
	Operators      int     `json:"operators" groups:"basic"`
}

type DirectTripResults struct {
	Candidates []*TripCandidate `json:"candidates" groups:"basic"`
	Summary    TripSummary      `json:"summary" groups:"basic"`
}

func SummariseTrips(candidates []*TripCandidate) TripSummary {
	var summary TripSummary

	var serviceNumbers []string
	var operators []string
	var cheapest *int

	for _, candidate := range candidates {
		serviceNumbers = append(serviceNumbers, candidate.ServiceNo)
		operators = append(operators, candidate.Operator)

		if candidate.FareCents != nil && (cheapest == nil || *candidate.FareCents < *cheapest) {
			cheapest = candidate.FareCents
		}

		if summary.FastestETA == nil || candidate.EstMinutes < *summary.FastestETA {
			eta := candidate.EstMinutes
			summary.FastestETA = &eta
		}
	}

	summary.DirectServices = len(util.RemoveDuplicateStrings(serviceNumbers, nil))
	summary.Operators = len(util.RemoveDuplicateStrings(operators, nil))

	if cheapest != nil {
		fare := FormatFare(*cheapest)
		summary.CheapestFare = &fare
	}

	return summary
}

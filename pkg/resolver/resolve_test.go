package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busfares/pkg/ctdf"
)

func fareOf(candidate *ctdf.TripCandidate) string {
	if candidate.Fare == nil {
		return ""
	}
	return *candidate.Fare
}

func TestResolveAdultCard(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	candidates := snapshot.Resolve("01012", "01019", "adult", "card")
	require.Len(t, candidates, 3)

	assert.Equal(t, "14", candidates[0].ServiceNo)
	assert.Equal(t, "SMRT", candidates[0].Operator)
	assert.Equal(t, 1, candidates[0].Hops)
	assert.Equal(t, 0.0, candidates[0].TravelKM)
	assert.Equal(t, 6, candidates[0].EstMinutes)
	assert.Equal(t, "$1.09", fareOf(candidates[0]))
	assert.Equal(t, "adult_card", candidates[0].FareSource)

	assert.Equal(t, "10", candidates[1].ServiceNo)
	assert.Equal(t, 1, candidates[1].Direction)
	assert.Equal(t, 2, candidates[1].Hops)
	assert.Equal(t, 5.0, candidates[1].TravelKM)
	assert.Equal(t, 16, candidates[1].EstMinutes)
	assert.Equal(t, "$1.50", fareOf(candidates[1]))
	assert.Equal(t, 150, *candidates[1].FareCents)

	assert.Equal(t, "X1", candidates[2].ServiceNo)
	assert.Nil(t, candidates[2].Fare)
	assert.Nil(t, candidates[2].FareCents)
	assert.Equal(t, "adult_card", candidates[2].FareSource)

	for _, candidate := range candidates {
		assert.Equal(t, "01012", candidate.FromStop)
		assert.Equal(t, "01019", candidate.ToStop)
	}
}

func TestResolveAdultCashFallsBackToCard(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	candidates := snapshot.Resolve("01012", "01019", "ADULT", "Cash")
	require.Len(t, candidates, 3)

	assert.Equal(t, "10", candidates[0].ServiceNo)
	assert.Equal(t, "$1.50", fareOf(candidates[0]))
	assert.Equal(t, "adult_card", candidates[0].FareSource)

	assert.Equal(t, "14", candidates[1].ServiceNo)
	assert.Equal(t, "$1.70", fareOf(candidates[1]))
	assert.Equal(t, "adult_cash", candidates[1].FareSource)

	assert.Equal(t, "X1", candidates[2].ServiceNo)
	assert.Equal(t, "adult_card", candidates[2].FareSource)
}

func TestResolveSeniorCash(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	candidates := snapshot.Resolve("01012", "01019", "senior", "cash")
	require.Len(t, candidates, 3)

	// 0km on the 14 has no senior cash price so uses the senior card price
	assert.Equal(t, "14", candidates[0].ServiceNo)
	assert.Equal(t, "$0.69", fareOf(candidates[0]))
	assert.Equal(t, "senior_card", candidates[0].FareSource)

	assert.Equal(t, "10", candidates[1].ServiceNo)
	assert.Equal(t, "$1.10", fareOf(candidates[1]))
	assert.Equal(t, "senior_cash", candidates[1].FareSource)
}

func TestResolveUnrecognisedRiderUsesAdultCard(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	candidates := snapshot.Resolve("01012", "01019", "tourist", "card")
	require.Len(t, candidates, 3)

	assert.Equal(t, "$1.09", fareOf(candidates[0]))
	assert.Equal(t, "adult_card", candidates[0].FareSource)
	assert.Equal(t, "$1.50", fareOf(candidates[1]))
	assert.Equal(t, "adult_card", candidates[1].FareSource)
}

func TestResolveNoDirectService(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"unknown stops", "99999", "88888"},
		{"unknown destination", "01012", "88888"},
		{"only connected against the direction of travel", "01039", "01012"},
		{"same stop", "01012", "01012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := snapshot.Resolve(tt.from, tt.to, "adult", "card")

			assert.NotNil(t, candidates)
			assert.Empty(t, candidates)
		})
	}
}

func TestResolveFollowsDirectionOfTravel(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	candidates := snapshot.Resolve("01019", "01012", "adult", "card")
	require.Len(t, candidates, 1)

	assert.Equal(t, "10", candidates[0].ServiceNo)
	assert.Equal(t, 2, candidates[0].Direction)
	assert.Equal(t, 2, candidates[0].Hops)
	assert.Equal(t, 5.0, candidates[0].TravelKM)
	assert.Equal(t, "$1.50", fareOf(candidates[0]))
}

func TestResolveServiceWithoutRecordIsSkipped(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	for _, candidate := range snapshot.Resolve("01012", "01019", "adult", "card") {
		assert.NotEqual(t, "99", candidate.ServiceNo)
	}
}

func TestResolveCashFallbackOnFourKilometreTrip(t *testing.T) {
	snapshot := NewSnapshot(&ctdf.Dataset{
		Services: []*ctdf.Service{{ServiceNo: "1", Direction: 1, Operator: "OP", Category: "X"}},
		RouteStops: routeStops("1", 1, "A", 1.0, "B", 5.0),
		FareBands: []*ctdf.FareBand{
			{Category: "x", MinKM: 0, MaxKM: 10, AdultCardCents: cents(100)},
		},
	})

	candidates := snapshot.Resolve("A", "B", "adult", "cash")
	require.Len(t, candidates, 1)

	assert.Equal(t, 4.0, candidates[0].TravelKM)
	assert.Equal(t, 13, candidates[0].EstMinutes)
	assert.Equal(t, "$1.00", fareOf(candidates[0]))
	assert.Equal(t, "adult_card", candidates[0].FareSource)
}

func TestResolveLoopingServiceGivesEveryBoardingPoint(t *testing.T) {
	snapshot := NewSnapshot(&ctdf.Dataset{
		Services:   []*ctdf.Service{{ServiceNo: "L", Direction: 1, Operator: "OP", Category: "X"}},
		RouteStops: routeStops("L", 1, "A", 0.0, "B", 1.0, "A", 2.0, "C", 3.0),
		FareBands: []*ctdf.FareBand{
			{Category: "X", MinKM: 0, MaxKM: 10, AdultCardCents: cents(100)},
		},
	})

	candidates := snapshot.Resolve("A", "C", "adult", "card")
	require.Len(t, candidates, 2)

	assert.Equal(t, 1, candidates[0].Hops)
	assert.Equal(t, 1.0, candidates[0].TravelKM)
	assert.Equal(t, 3, candidates[1].Hops)
	assert.Equal(t, 3.0, candidates[1].TravelKM)
}

func TestResolveOverlappingFareBandsGiveOneCandidateEach(t *testing.T) {
	snapshot := NewSnapshot(&ctdf.Dataset{
		Services:   []*ctdf.Service{{ServiceNo: "1", Direction: 1, Operator: "OP", Category: "X"}},
		RouteStops: routeStops("1", 1, "A", 0.0, "B", 2.0),
		FareBands: []*ctdf.FareBand{
			{Category: "X", MinKM: 0, MaxKM: 3, AdultCardCents: cents(120)},
			{Category: "X", MinKM: 1, MaxKM: 5, AdultCardCents: cents(110)},
		},
	})

	candidates := snapshot.Resolve("A", "B", "adult", "card")
	require.Len(t, candidates, 2)

	assert.Equal(t, "$1.10", fareOf(candidates[0]))
	assert.Equal(t, "$1.20", fareOf(candidates[1]))
}

func TestResolveFareBandBoundariesAreInclusive(t *testing.T) {
	snapshot := NewSnapshot(&ctdf.Dataset{
		Services:   []*ctdf.Service{{ServiceNo: "1", Direction: 1, Operator: "OP", Category: "X"}},
		RouteStops: routeStops("1", 1, "A", 0.0, "B", 3.2, "C", 3.3),
		FareBands: []*ctdf.FareBand{
			{Category: "X", MinKM: 0, MaxKM: 3.2, AdultCardCents: cents(100)},
			{Category: "X", MinKM: 3.3, MaxKM: 4.2, AdultCardCents: cents(120)},
		},
	})

	candidates := snapshot.Resolve("A", "B", "adult", "card")
	require.Len(t, candidates, 1)
	assert.Equal(t, "$1.00", fareOf(candidates[0]))

	candidates = snapshot.Resolve("A", "C", "adult", "card")
	require.Len(t, candidates, 1)
	assert.Equal(t, "$1.20", fareOf(candidates[0]))
}

func TestResolveIsIdempotent(t *testing.T) {
	snapshot := NewSnapshot(testDataset())

	first := snapshot.Resolve("01012", "01019", "student", "cash")
	second := snapshot.Resolve("01012", "01019", "student", "cash")

	assert.Equal(t, first, second)
}

func TestEstimateMinutes(t *testing.T) {
	tests := []struct {
		name       string
		distanceKM float64
		hops       int
		expected   int
	}{
		{"by distance", 5.0, 2, 16},
		{"by distance rounds half up", 0.15625, 9, 1},
		{"zero distance uses hops", 0, 3, 17},
		{"negative distance uses hops", -1.2, 3, 17},
		{"zero hops zero distance", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimateMinutes(tt.distanceKM, tt.hops))
		})
	}
}

func TestCompareCandidates(t *testing.T) {
	fare := func(s string) *string { return &s }

	candidates := []*ctdf.TripCandidate{
		{ServiceNo: "unpriced", Hops: 1, TravelKM: 1},
		{ServiceNo: "two-hops", Fare: fare("$1.00"), Hops: 2, TravelKM: 1},
		{ServiceNo: "one-hop-far", Fare: fare("$1.00"), Hops: 1, TravelKM: 3},
		{ServiceNo: "one-hop-near", Fare: fare("$1.00"), Hops: 1, TravelKM: 2},
		{ServiceNo: "ten-dollars", Fare: fare("$10.50"), Hops: 9, TravelKM: 9},
		{ServiceNo: "two-dollars", Fare: fare("$2.00"), Hops: 1, TravelKM: 1},
	}

	sorted := make([]*ctdf.TripCandidate, len(candidates))
	copy(sorted, candidates)
	sortCandidates(sorted)

	var order []string
	for _, candidate := range sorted {
		order = append(order, candidate.ServiceNo)
	}

	// Fares sort as text so $10.50 comes before $2.00
	assert.Equal(t, []string{"one-hop-near", "one-hop-far", "two-hops", "ten-dollars", "two-dollars", "unpriced"}, order)
}

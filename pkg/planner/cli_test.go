package planner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busfares/pkg/ctdf"
)

func TestPrintResults(t *testing.T) {
	fare := "$1.09"
	cents := 109
	eta := 8

	results := &ctdf.DirectTripResults{
		Candidates: []*ctdf.TripCandidate{
			{
				ServiceNo:  "10",
				Direction:  1,
				Operator:   "SBST",
				Hops:       3,
				TravelKM:   2.5,
				EstMinutes: 8,
				FareCents:  &cents,
				Fare:       &fare,
				FareSource: "adult_card",
			},
			{
				ServiceNo:  "99",
				Direction:  2,
				Operator:   "SMRT",
				Hops:       4,
				TravelKM:   3.1,
				EstMinutes: 10,
				FareSource: "adult_card",
			},
		},
		Summary: ctdf.TripSummary{DirectServices: 2, CheapestFare: &fare, FastestETA: &eta, Operators: 2},
	}

	out := &bytes.Buffer{}
	require.NoError(t, PrintResults(out, results))

	output := out.String()
	assert.Contains(t, output, "SERVICE")
	assert.Contains(t, output, "$1.09")
	assert.Contains(t, output, "2.50")
	assert.Contains(t, output, "2 direct services by 2 operators, cheapest $1.09, fastest 8 min")
}

func TestPrintResultsWithoutCandidates(t *testing.T) {
	out := &bytes.Buffer{}

	err := PrintResults(out, &ctdf.DirectTripResults{Candidates: []*ctdf.TripCandidate{}})
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Empty(t, out.String())
}

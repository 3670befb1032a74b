package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source"
	"github.com/travigo/busfares/pkg/dataaggregator/source/databaselookup"
	"github.com/travigo/busfares/pkg/dataaggregator/source/directtrips"
	"github.com/travigo/busfares/pkg/resolver"
)

type fakeSource struct {
	stops    []*ctdf.Stop
	arrivals map[string][]*ctdf.ServiceArrivals
}

func (f fakeSource) GetName() string {
	return "Fake"
}

func (f fakeSource) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Stop{}),
		reflect.TypeOf([]*ctdf.Stop{}),
		reflect.TypeOf(ctdf.StopArrivalsBoard{}),
	}
}

func (f fakeSource) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Stop:
		for _, stop := range f.stops {
			if stop.PrimaryIdentifier == q.PrimaryIdentifier {
				return stop, nil
			}
		}
		return nil, databaselookup.ErrStopNotFound
	case query.AllStops:
		return f.stops, nil
	case query.StopArrivals:
		return ctdf.NewStopArrivalsBoard(q.Stop, f.arrivals[q.Stop]), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func cents(c int) *int {
	return &c
}

var testDataset = &ctdf.Dataset{
	Stops: []*ctdf.Stop{
		{PrimaryIdentifier: "01012", Description: "Hotel Grand Pacific", RoadName: "Victoria St"},
		{PrimaryIdentifier: "01013", Description: "St. Joseph's Ch", RoadName: "Victoria St"},
	},
	Services: []*ctdf.Service{
		{ServiceNo: "10", Direction: 1, Operator: "SBST", Category: "TRUNK"},
	},
	RouteStops: []*ctdf.RouteStop{
		{ServiceNo: "10", Direction: 1, StopRef: "01012", StopSequence: 1, DistanceKM: 0},
		{ServiceNo: "10", Direction: 1, StopRef: "01013", StopSequence: 2, DistanceKM: 0.6},
	},
	FareBands: []*ctdf.FareBand{
		{Category: "TRUNK", MinKM: 0, MaxKM: 3.2, AdultCardCents: cents(109), SeniorCardCents: cents(70)},
	},
}

func setupAggregator(t *testing.T, store *resolver.Store) {
	t.Helper()

	previous := dataaggregator.GlobalAggregator
	t.Cleanup(func() {
		dataaggregator.GlobalAggregator = previous
	})

	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}
	dataaggregator.GlobalAggregator.RegisterSource(fakeSource{
		stops: testDataset.Stops,
		arrivals: map[string][]*ctdf.ServiceArrivals{
			"01012": {
				{StopRef: "01012", ServiceNo: "10", Arrivals: []ctdf.Arrival{{ETA: "2024-03-01T08:15:00+08:00"}, {ETA: "soon"}}},
				{StopRef: "01012", ServiceNo: "", Arrivals: []ctdf.Arrival{}},
			},
		},
	})
	dataaggregator.GlobalAggregator.RegisterSource(directtrips.Source{Store: store})
}

func loadedStore() *resolver.Store {
	store := resolver.NewStore(nil)
	store.Swap(resolver.NewSnapshot(testDataset))

	return store
}

func get(t *testing.T, path string) (int, map[string]any, []any) {
	t.Helper()

	resp, err := NewApp().Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var object map[string]any
	if json.Unmarshal(body, &object) == nil {
		return resp.StatusCode, object, nil
	}

	var array []any
	require.NoError(t, json.Unmarshal(body, &array), string(body))

	return resp.StatusCode, nil, array
}

func TestPlannerRoute(t *testing.T) {
	setupAggregator(t, loadedStore())

	status, body, _ := get(t, "/core/planner/01012/01013")
	require.Equal(t, 200, status)

	candidates := body["candidates"].([]any)
	require.Len(t, candidates, 1)

	candidate := candidates[0].(map[string]any)
	assert.Equal(t, "10", candidate["service_no"])
	assert.Equal(t, "$1.09", candidate["fare"])
	assert.Equal(t, "adult_card", candidate["fare_source"])
	assert.Equal(t, 0.6, candidate["travel_km"])
	assert.EqualValues(t, 2, candidate["est_minutes"])
	assert.NotContains(t, candidate, "category")
	assert.NotContains(t, candidate, "fare_cents")

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["direct_services"])
	assert.Equal(t, "$1.09", summary["cheapest_fare"])
}

func TestPlannerRouteDetailedWithRider(t *testing.T) {
	setupAggregator(t, loadedStore())

	status, body, _ := get(t, "/core/planner/01012/01013?rider=SENIOR&pay=cash&detailed=true")
	require.Equal(t, 200, status)

	candidate := body["candidates"].([]any)[0].(map[string]any)
	assert.Equal(t, "$0.70", candidate["fare"])
	assert.Equal(t, "senior_card", candidate["fare_source"])
	assert.Equal(t, "TRUNK", candidate["category"])
	assert.EqualValues(t, 70, candidate["fare_cents"])
}

func TestPlannerRouteWithoutResults(t *testing.T) {
	setupAggregator(t, loadedStore())

	status, body, _ := get(t, "/core/planner/01013/01012")
	require.Equal(t, 200, status)

	assert.Empty(t, body["candidates"])
	assert.NotContains(t, body["summary"], "cheapest_fare")
}

func TestPlannerRouteWithoutSnapshot(t *testing.T) {
	setupAggregator(t, resolver.NewStore(nil))

	status, body, _ := get(t, "/core/planner/01012/01013")
	assert.Equal(t, 503, status)
	assert.Contains(t, body, "error")
}

func TestStopsRoutes(t *testing.T) {
	setupAggregator(t, loadedStore())

	status, _, stops := get(t, "/core/stops")
	require.Equal(t, 200, status)
	require.Len(t, stops, 2)
	assert.Equal(t, "01012 — Hotel Grand Pacific (Victoria St)", stops[0].(map[string]any)["label"])

	status, stop, _ := get(t, "/core/stops/01013")
	require.Equal(t, 200, status)
	assert.Equal(t, "St. Joseph's Ch", stop["description"])

	status, body, _ := get(t, "/core/stops/99999")
	assert.Equal(t, 404, status)
	assert.Contains(t, body, "error")
}

func TestStopArrivalsRoute(t *testing.T) {
	setupAggregator(t, loadedStore())

	status, board, _ := get(t, "/core/stops/01012/arrivals")
	require.Equal(t, 200, status)

	assert.Equal(t, "01012", board["bus_stop_code"])

	services := board["services"].([]any)
	require.Len(t, services, 2)
	assert.Equal(t, map[string]any{"service_no": "10", "arrivals": "08:15, soon"}, services[0])
	assert.Equal(t, map[string]any{"service_no": "-", "arrivals": "-"}, services[1])
}

func TestVersionRoute(t *testing.T) {
	setupAggregator(t, loadedStore())

	status, body, _ := get(t, "/core/version")
	require.Equal(t, 200, status)
	assert.Equal(t, "v0.1", body["version"])
}

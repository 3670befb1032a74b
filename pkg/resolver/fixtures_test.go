package resolver

import "github.com/travigo/busfares/pkg/ctdf"

func cents(c int) *int {
	return &c
}

func routeStops(serviceNo string, direction int, stops ...any) []*ctdf.RouteStop {
	var routeStops []*ctdf.RouteStop

	for i := 0; i < len(stops); i += 2 {
		routeStops = append(routeStops, &ctdf.RouteStop{
			ServiceNo:    serviceNo,
			Direction:    direction,
			StopRef:      stops[i].(string),
			StopSequence: len(routeStops) + 1,
			DistanceKM:   stops[i+1].(float64),
		})
	}

	return routeStops
}

func testDataset() *ctdf.Dataset {
	dataset := &ctdf.Dataset{
		Stops: []*ctdf.Stop{
			{PrimaryIdentifier: "01012", Description: "Hotel Grand Pacific", RoadName: "Victoria St"},
			{PrimaryIdentifier: "01013", Description: "St. Joseph's Church", RoadName: "Victoria St"},
			{PrimaryIdentifier: "01019", Description: "Bras Basah Cplx", RoadName: "Victoria St"},
			{PrimaryIdentifier: "01029", Description: "Nan Hua Pr Sch", RoadName: "Nth Bridge Rd"},
			{PrimaryIdentifier: "01039", Description: "Bugis Cube", RoadName: "Nth Bridge Rd"},
		},
		Services: []*ctdf.Service{
			{ServiceNo: "10", Direction: 1, Operator: "SBST", Category: "TRUNK"},
			{ServiceNo: "10", Direction: 2, Operator: "SBST", Category: "TRUNK"},
			{ServiceNo: "14", Direction: 1, Operator: "SMRT", Category: "trunk"},
			{ServiceNo: "X1", Direction: 1, Operator: "TTS", Category: "EXPRESS"},
		},
		FareBands: []*ctdf.FareBand{
			{Category: "TRUNK", MinKM: 3.3, MaxKM: 6.0, AdultCardCents: cents(150), SeniorCardCents: cents(90), SeniorCashCents: cents(110)},
			{Category: "TRUNK", MinKM: 0, MaxKM: 3.2, AdultCardCents: cents(109), AdultCashCents: cents(170), SeniorCardCents: cents(69)},
			{Category: "TRUNK", MinKM: 6.1, MaxKM: 10, AdultCardCents: cents(200), AdultCashCents: cents(250)},
			{Category: "EXPRESS", MinKM: 0, MaxKM: 4.0, AdultCardCents: cents(200)},
		},
	}

	// 01012 -> 01019 is 5km on the 10, a zero distance 2 stop hop on the 14 and unpriced on the X1
	dataset.RouteStops = append(dataset.RouteStops, routeStops("10", 1, "01012", 0.0, "01013", 2.5, "01019", 5.0, "01029", 9.0)...)
	dataset.RouteStops = append(dataset.RouteStops, routeStops("10", 2, "01029", 0.0, "01019", 4.0, "01013", 6.5, "01012", 9.0)...)
	dataset.RouteStops = append(dataset.RouteStops, routeStops("14", 1, "01012", 0.0, "01019", 0.0, "01029", 0.0)...)
	dataset.RouteStops = append(dataset.RouteStops, routeStops("X1", 1, "01012", 0.0, "01039", 1.0, "01013", 2.0, "01029", 3.0, "01019", 5.0)...)
	// Has route stops but no service record
	dataset.RouteStops = append(dataset.RouteStops, routeStops("99", 1, "01012", 0.0, "01019", 3.0)...)

	return dataset
}

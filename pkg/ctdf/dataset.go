package ctdf

// Dataset is the full set of reference relations a direct trip query runs over
type Dataset struct {
	Stops      []*Stop
	Services   []*Service
	RouteStops []*RouteStop
	FareBands  []*FareBand
}

package datasets

type SupportedObjects struct {
	Stops      bool
	Services   bool
	RouteStops bool
	FareBands  bool

	Arrivals bool
}

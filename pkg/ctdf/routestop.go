package ctdf

type RouteStop struct {
	ServiceNo string `json:"service_no"`
	Direction int    `json:"direction"`

	StopRef      string  `json:"bus_stop_code"`
	StopSequence int     `json:"stop_sequence"`
	DistanceKM   float64 `json:"distance_km"`

	DataSource *DataSource `json:"-"`
}

func (r *RouteStop) ServiceKey() ServiceKey {
	return ServiceKey{ServiceNo: r.ServiceNo, Direction: r.Direction}
}

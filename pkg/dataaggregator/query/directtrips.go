package query

type DirectTrips struct {
	OriginStop      string
	DestinationStop string

	RiderType string
	PayMode   string
}

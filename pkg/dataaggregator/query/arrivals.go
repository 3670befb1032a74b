package query

import "go.mongodb.org/mongo-driver/bson"

type StopArrivals struct {
	Stop string
}

func (s *StopArrivals) ToBson() bson.M {
	return bson.M{"stopref": s.Stop}
}

package ctdf

import "fmt"

type Service struct {
	ServiceNo string `json:"service_no" groups:"basic"`
	Direction int    `json:"direction" groups:"basic"`

	Operator string `json:"operator" groups:"basic"`
	Category string `json:"category" groups:"detailed"`

	DataSource *DataSource `json:"-" groups:"internal"`
}

func (s *Service) Key() ServiceKey {
	return ServiceKey{ServiceNo: s.ServiceNo, Direction: s.Direction}
}

// ServiceKey identifies a single route variant of a service
type ServiceKey struct {
	ServiceNo string
	Direction int
}

func (k ServiceKey) String() string {
	return fmt.Sprintf("%s/%d", k.ServiceNo, k.Direction)
}

package ctdf

import (
	"strings"
	"time"
)

// ServiceArrivals is the upcoming arrivals of one service at one stop, as supplied by an arrivals feed
type ServiceArrivals struct {
	StopRef   string    `json:"bus_stop_code" groups:"basic"`
	ServiceNo string    `json:"service_no" groups:"basic"`
	Arrivals  []Arrival `json:"arrivals" groups:"basic"`

	ModificationDateTime time.Time   `json:"-" groups:"detailed"`
	DataSource           *DataSource `json:"-" groups:"internal"`
}

type Arrival struct {
	ETA string `json:"eta" groups:"basic"`
}

var arrivalTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DisplayTime renders the ETA as HH:MM in its own offset, or as-is when it cannot be parsed
func (a Arrival) DisplayTime() string {
	for _, layout := range arrivalTimeLayouts {
		if eta, err := time.Parse(layout, a.ETA); err == nil {
			return eta.Format("15:04")
		}
	}

	return a.ETA
}

func (s *ServiceArrivals) DisplayTimes() string {
	var times []string

	for _, arrival := range s.Arrivals {
		if arrival.ETA == "" {
			continue
		}

		times = append(times, arrival.DisplayTime())
	}

	if len(times) == 0 {
		return "-"
	}

	return strings.Join(times, ", ")
}

type StopArrivalsBoard struct {
	StopRef  string                `json:"bus_stop_code" groups:"basic"`
	Services []StopArrivalsService `json:"services" groups:"basic"`
}

type StopArrivalsService struct {
	ServiceNo string `json:"service_no" groups:"basic"`
	Arrivals  string `json:"arrivals" groups:"basic"`
}

func NewStopArrivalsBoard(stopRef string, arrivals []*ServiceArrivals) *StopArrivalsBoard {
	board := &StopArrivalsBoard{
		StopRef:  stopRef,
		Services: []StopArrivalsService{},
	}

	for _, serviceArrivals := range arrivals {
		serviceNo := serviceArrivals.ServiceNo
		if serviceNo == "" {
			serviceNo = "-"
		}

		board.Services = append(board.Services, StopArrivalsService{
			ServiceNo: serviceNo,
			Arrivals:  serviceArrivals.DisplayTimes(),
		})
	}

	return board
}

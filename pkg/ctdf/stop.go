package ctdf

import "fmt"

type Stop struct {
	PrimaryIdentifier string `json:"bus_stop_code" groups:"basic"`

	Description string `json:"description" groups:"basic"`
	RoadName    string `json:"road_name" groups:"basic"`

	DataSource *DataSource `json:"-" groups:"internal"`
}

// Label is the display form used by stop pickers, eg. "01012 — Hotel Grand Pacific (Victoria St)"
func (s *Stop) Label() string {
	return fmt.Sprintf("%s — %s (%s)", s.PrimaryIdentifier, s.Description, s.RoadName)
}

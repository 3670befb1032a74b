package gtfs

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/formats"
	"google.golang.org/protobuf/proto"
)

// Realtime turns a GTFS-RT TripUpdates feed into per stop & service arrivals. The feed stop_id is
// taken as the bus stop code and route_id as the service number.
type Realtime struct {
	Location *time.Location

	feed *gtfs.FeedMessage
}

func (r *Realtime) ParseFile(reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return fmt.Errorf("parsing GTFS-RT protobuf: %w", err)
	}

	r.feed = feed

	return nil
}

func (r *Realtime) ServiceArrivals() []*ctdf.ServiceArrivals {
	location := r.Location
	if location == nil {
		location = time.UTC
	}

	type arrivalKey struct {
		stop    string
		service string
	}
	etas := map[arrivalKey][]time.Time{}

	withTripUpdate := 0

	for _, entity := range r.feed.GetEntity() {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}
		withTripUpdate++

		routeID := tripUpdate.GetTrip().GetRouteId()
		if routeID == "" {
			continue
		}

		for _, stopTimeUpdate := range tripUpdate.GetStopTimeUpdate() {
			if stopTimeUpdate.GetScheduleRelationship() == gtfs.TripUpdate_StopTimeUpdate_SKIPPED {
				continue
			}

			stopID := stopTimeUpdate.GetStopId()
			if stopID == "" {
				continue
			}

			event := stopTimeUpdate.GetArrival()
			if event.GetTime() == 0 {
				event = stopTimeUpdate.GetDeparture()
			}
			if event.GetTime() == 0 {
				continue
			}

			key := arrivalKey{stop: stopID, service: routeID}
			etas[key] = append(etas[key], time.Unix(event.GetTime(), 0))
		}
	}

	serviceArrivals := make([]*ctdf.ServiceArrivals, 0, len(etas))

	for key, times := range etas {
		sort.Slice(times, func(i, j int) bool {
			return times[i].Before(times[j])
		})

		arrivals := &ctdf.ServiceArrivals{
			StopRef:   key.stop,
			ServiceNo: key.service,
		}
		for _, eta := range times {
			arrivals.Arrivals = append(arrivals.Arrivals, ctdf.Arrival{ETA: eta.In(location).Format(time.RFC3339)})
		}

		serviceArrivals = append(serviceArrivals, arrivals)
	}

	sort.Slice(serviceArrivals, func(i, j int) bool {
		if serviceArrivals[i].StopRef != serviceArrivals[j].StopRef {
			return serviceArrivals[i].StopRef < serviceArrivals[j].StopRef
		}

		return serviceArrivals[i].ServiceNo < serviceArrivals[j].ServiceNo
	})

	log.Info().
		Int("entities", len(r.feed.GetEntity())).
		Int("tripupdates", withTripUpdate).
		Int("servicearrivals", len(serviceArrivals)).
		Msg("Converted GTFS-RT feed")

	return serviceArrivals
}

func (r *Realtime) Import(dataset datasets.DataSet, datasource *ctdf.DataSource) error {
	if !dataset.SupportedObjects.Arrivals {
		return errors.New("This format requires arrivals to be enabled")
	}
	if r.feed == nil {
		return errors.New("no feed has been parsed")
	}

	return formats.ImportServiceArrivals(r.ServiceArrivals(), datasource)
}

package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source/databaselookup"
)

func StopsRouter(router fiber.Router) {
	router.Get("/", listStops)
	router.Get("/:identifier", getStop)
	router.Get("/:identifier/arrivals", getStopArrivals)
}

type stopResponse struct {
	PrimaryIdentifier string `json:"bus_stop_code"`
	Description       string `json:"description"`
	RoadName          string `json:"road_name"`
	Label             string `json:"label"`
}

func newStopResponse(stop *ctdf.Stop) stopResponse {
	return stopResponse{
		PrimaryIdentifier: stop.PrimaryIdentifier,
		Description:       stop.Description,
		RoadName:          stop.RoadName,
		Label:             stop.Label(),
	}
}

func listStops(c *fiber.Ctx) error {
	stops, err := dataaggregator.Lookup[[]*ctdf.Stop](query.AllStops{})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := make([]stopResponse, 0, len(stops))
	for _, stop := range stops {
		response = append(response, newStopResponse(stop))
	}

	return c.JSON(response)
}

func getStop(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	stop, err := dataaggregator.Lookup[*ctdf.Stop](query.Stop{
		PrimaryIdentifier: identifier,
	})

	if errors.Is(err, databaselookup.ErrStopNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching Stop Identifier",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(newStopResponse(stop))
}

func getStopArrivals(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	board, err := dataaggregator.Lookup[*ctdf.StopArrivalsBoard](query.StopArrivals{
		Stop: identifier,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	boardReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, board)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce arrivals board",
		})
	}

	return c.JSON(boardReduced)
}

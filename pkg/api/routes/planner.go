package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/resolver"
)

func PlannerRouter(router fiber.Router) {
	router.Get("/:origin/:destination", getDirectTripsBetweenStops)
}

func getDirectTripsBetweenStops(c *fiber.Ctx) error {
	originIdentifier := c.Params("origin")
	destinationIdentifier := c.Params("destination")

	riderType := c.Query("rider", string(ctdf.RiderTypeAdult))
	payMode := c.Query("pay", string(ctdf.PayModeCard))

	results, err := dataaggregator.Lookup[*ctdf.DirectTripResults](query.DirectTrips{
		OriginStop:      originIdentifier,
		DestinationStop: destinationIdentifier,
		RiderType:       riderType,
		PayMode:         payMode,
	})

	if errors.Is(err, resolver.ErrNoSnapshot) {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Route data has not been loaded yet",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	resultsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, results)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce direct trip results",
		})
	}

	return c.JSON(resultsReduced)
}

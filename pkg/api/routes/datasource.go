package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busfares/pkg/dataaggregator"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/manager"
)

func DatasourcesRouter(router fiber.Router) {
	router.Get("/datasets", listDatasets)
	router.Get("/datasets/:identifier", getDataset)
}

func listDatasets(c *fiber.Ctx) error {
	registered, err := dataaggregator.Lookup[[]datasets.DataSet](query.AllDataSets{})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(registered)
}

func getDataset(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	dataset, err := dataaggregator.Lookup[*datasets.DataSet](query.DataSet{
		Identifier: identifier,
	})

	if errors.Is(err, manager.ErrDatasetNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dataset)
}

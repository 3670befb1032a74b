package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busfares/pkg/api/stats"
)

const Version = "v0.1"

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": Version,
		"dataset": stats.CurrentRecordsStats().SnapshotVersion,
	})
}

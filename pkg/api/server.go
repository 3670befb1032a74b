package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busfares/pkg/api/routes"
)

func NewApp() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fiberError, ok := err.(*fiber.Error); ok {
				code = fiberError.Code
			}

			c.Status(code)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})
	webApp.Use(NewLogger("/core/version"))

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("stats", routes.Stats)

	routes.StopsRouter(group.Group("/stops"))

	routes.PlannerRouter(group.Group("/planner"))

	routes.DatasourcesRouter(group.Group("/datasources"))

	return webApp
}

func SetupServer(listen string) error {
	return NewApp().Listen(listen)
}

package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *Handler, allowOrigins string) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	// Custom logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	// Prometheus exposition
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")

	api.Get("/health", handler.GetHealth)
	api.Get("/cities", handler.GetCities)
	api.Get("/weather", handler.GetWeather)

	// Session routes
	sessions := api.Group("/sessions")
	sessions.Post("/", handler.CreateSession)
	sessions.Get("/:id", handler.GetSession)
	sessions.Delete("/:id", handler.DeleteSession)
	sessions.Post("/:id/select", handler.SelectLocation)
	sessions.Post("/:id/cities/:index", handler.SelectCity)
	sessions.Post("/:id/geolocation", handler.ReportGeolocation)
	sessions.Post("/:id/search", handler.Search)
	sessions.Post("/:id/search/results/:index", handler.ChooseSearchResult)
	sessions.Post("/:id/search/dismiss", handler.DismissSearch)
	sessions.Put("/:id/settings", handler.UpdateSettings)
	sessions.Post("/:id/details/toggle", handler.ToggleDetails)
	sessions.Post("/:id/menus/:menu", handler.OpenMenu)
	sessions.Delete("/:id/menus/:menu", handler.CloseMenu)
	sessions.Post("/:id/click", handler.Click)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Endpoint not found",
			"path":    c.Path(),
			"success": false,
		})
	})
}

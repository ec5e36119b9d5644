package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"Escapade/Controllers"
	"Escapade/Models"
	"Escapade/RouteOptimizer"
	"Escapade/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, optimizer *RouteOptimizer.Optimizer) {
	routeHandler := RouteOptimizer.NewRouteHandler(optimizer)
	venueController := Controllers.NewVenueController(db)

	api := app.Group("/api")

	// Route optimization engine
	api.Post("/OptimizeRoute", routeHandler.OptimizeRoute)
	api.Post("/TravelEstimate", routeHandler.TravelEstimate)
	api.Post("/RouteSegment", routeHandler.RouteSegment)
	api.Post("/LegModes", routeHandler.LegModes)

	// Venue lookups (read-only; CRUD lives behind the admin service)
	api.Get("/GetVenues", venueController.GetVenues)
	api.Get("/GetVenue/:id", venueController.GetVenue)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func FiberConfig(optimizer *RouteOptimizer.Optimizer) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB, optimizer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}

package main

import (
	"log"
	"os"
	"time"

	"Escapade/CronJobs"
	"Escapade/FiberConfig"
	"Escapade/Maps"
	"Escapade/Models"
	"Escapade/RouteOptimizer"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	Models.Connect()

	osrm := Maps.NewOSRMClient(os.Getenv("MAPS_BASE_URL"), os.Getenv("MAPS_API_KEY"))
	cache := Maps.NewDirectionsCache(Maps.NewFallbackProvider(osrm), 5*time.Minute)

	tariffs := RouteOptimizer.DefaultTariffs()
	if path := os.Getenv("TARIFF_FILE"); path != "" {
		loaded, err := RouteOptimizer.LoadTariffs(path)
		if err != nil {
			log.Fatalf("Failed to load tariffs: %v", err)
		}
		tariffs = loaded
	}

	optimizer := RouteOptimizer.New(cache, Models.NewDBVenueResolver(Models.DB), tariffs)

	sweeper := CronJobs.NewCacheSweeper(cache, os.Getenv("CACHE_SWEEP_SCHEDULE"))
	if err := sweeper.Start(); err != nil {
		log.Printf("Failed to start cache sweeper: %v", err)
	}
	defer sweeper.Stop()

	FiberConfig.FiberConfig(optimizer)
}

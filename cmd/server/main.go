package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"terrarium-api/internal/config"
	"terrarium-api/internal/controller"
	"terrarium-api/internal/repository"
	"terrarium-api/internal/routes"
	"terrarium-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Open the database and run the schema migration once at startup
	store, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer store.Close()
	log.Printf("Database ready (%s)", cfg.DatabaseURL)

	// Initialize service and controller
	svc := service.NewDataService(store)
	ctrl := controller.NewDataController(svc)

	// Set up routes
	router := routes.SetupRouter(ctrl)

	// CORS setup: devices and dashboards may call from any origin
	handler := cors.AllowAll().Handler(router)

	// Start the HTTP server
	log.Printf("Server is running on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal("Error starting server:", err)
	}
}

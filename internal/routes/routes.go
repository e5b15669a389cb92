package routes

import (
	"github.com/gorilla/mux"

	"terrarium-api/internal/controller"
)

// SetupRouter defines all API routes.
func SetupRouter(c *controller.DataController) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/data", c.HandleIngestData).Methods("POST")
	api.HandleFunc("/commands", c.HandleGetCommand).Methods("GET")
	api.HandleFunc("/control", c.HandleSetCommand).Methods("POST")
	api.HandleFunc("/latest_data/{device_id}", c.HandleLatestData).Methods("GET")
	api.HandleFunc("/historical_data/{device_id}", c.HandleHistoricalData).Methods("GET")

	router.HandleFunc("/", c.HandleRoot).Methods("GET")

	return router
}

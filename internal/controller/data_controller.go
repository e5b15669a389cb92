package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"terrarium-api/internal/models"
	"terrarium-api/internal/service"
	"terrarium-api/internal/utils"
)

// DataController handles HTTP requests for sensor data and device commands.
type DataController struct {
	service *service.DataService
}

// NewDataController creates a new DataController.
func NewDataController(svc *service.DataService) *DataController {
	return &DataController{service: svc}
}

// HandleIngestData handles POST /api/v1/data: one sensor reading per call.
func (c *DataController) HandleIngestData(w http.ResponseWriter, r *http.Request) {
	var req models.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeBadRequest, "Request must be JSON", nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}
	defer r.Body.Close()

	// Presence checks, not truthiness: temperature/humidity of 0 are valid
	// measurements and arrive as non-nil pointers.
	if req.DeviceID == "" || req.Temperature == nil || req.Humidity == nil {
		apiErr := models.NewAPIError(models.ErrorCodeMissingParameter, "Invalid data", nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}

	if err := c.service.IngestReading(r.Context(), req); err != nil {
		log.Printf("Error storing sensor data: %v", err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, fmt.Sprintf("error storing data: %v", err), nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Data received successfully"})
}

// HandleGetCommand handles GET /api/v1/commands?device_id=X: device polling.
// A device with no pending command gets {"command": null} with status 200.
func (c *DataController) HandleGetCommand(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		apiErr := models.NewAPIError(models.ErrorCodeMissingParameter, "device_id is required", nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}

	command, err := c.service.PendingCommand(r.Context(), deviceID)
	if err != nil {
		log.Printf("Error fetching command for %s: %v", deviceID, err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, fmt.Sprintf("error fetching command: %v", err), nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.CommandResponse{Command: command})
}

// HandleSetCommand handles POST /api/v1/control: the dashboard queues a
// command for a device, replacing any earlier one.
func (c *DataController) HandleSetCommand(w http.ResponseWriter, r *http.Request) {
	var req models.ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeBadRequest, "Request must be JSON", nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}
	defer r.Body.Close()

	if req.DeviceID == "" || req.Command == "" {
		apiErr := models.NewAPIError(models.ErrorCodeMissingParameter, "device_id and command are required", nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}

	if err := c.service.SetCommand(r.Context(), req.DeviceID, req.Command); err != nil {
		log.Printf("Error setting command for %s: %v", req.DeviceID, err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, fmt.Sprintf("error setting command: %v", err), nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Command set successfully"})
}

// HandleLatestData handles GET /api/v1/latest_data/{device_id}.
func (c *DataController) HandleLatestData(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	reading, err := c.service.LatestReading(r.Context(), deviceID)
	if errors.Is(err, service.ErrNotFound) {
		apiErr := models.NewAPIError(models.ErrorCodeNotFound, "No data found for this device", nil, http.StatusNotFound)
		utils.RespondWithError(w, apiErr)
		return
	}
	if err != nil {
		log.Printf("Error fetching latest data for %s: %v", deviceID, err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, fmt.Sprintf("error fetching data: %v", err), nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reading.ToResponse())
}

// HandleHistoricalData handles GET /api/v1/historical_data/{device_id}:
// up to 100 readings, newest first; an unknown device gets an empty array.
func (c *DataController) HandleHistoricalData(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	readings, err := c.service.RecentReadings(r.Context(), deviceID)
	if err != nil {
		log.Printf("Error fetching historical data for %s: %v", deviceID, err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, fmt.Sprintf("error fetching data: %v", err), nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	out := make([]models.ReadingResponse, 0, len(readings))
	for _, reading := range readings {
		out = append(out, reading.ToResponse())
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// HandleRoot handles GET /: plain-text liveness check.
func (c *DataController) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Terrarium telemetry service is running")
}

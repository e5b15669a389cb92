package service

import (
	"context"
	"errors"
	"log"
	"time"

	"terrarium-api/internal/models"
	"terrarium-api/internal/repository"
)

// ErrNotFound is returned by LatestReading when a device has no readings.
var ErrNotFound = repository.ErrNotFound

// DataService implements the ingestion, command-relay and query semantics on
// top of the store.
type DataService struct {
	store *repository.Store
}

// NewDataService creates a new DataService.
func NewDataService(store *repository.Store) *DataService {
	return &DataService{store: store}
}

// IngestReading persists one sensor reading with timestamp = receipt time.
// Field presence has already been validated at the controller; zero is a
// valid measurement for both temperature and humidity.
func (s *DataService) IngestReading(ctx context.Context, req models.IngestRequest) error {
	reading := models.SensorReading{
		DeviceID:    req.DeviceID,
		Temperature: *req.Temperature,
		Humidity:    *req.Humidity,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.store.InsertReading(ctx, &reading); err != nil {
		return err
	}
	log.Printf("Received data from %s: Temp=%v, Hum=%v", req.DeviceID, reading.Temperature, reading.Humidity)
	return nil
}

// SetCommand stores the pending command for a device, replacing any earlier
// one (last-write-wins).
func (s *DataService) SetCommand(ctx context.Context, deviceID, command string) error {
	if err := s.store.UpsertCommand(ctx, deviceID, command); err != nil {
		return err
	}
	log.Printf("Control command '%s' set for %s", command, deviceID)
	return nil
}

// PendingCommand returns the device's pending command, or nil when the device
// has no command row or its command is empty. Absence is a steady-state
// answer for polling devices, never an error.
func (s *DataService) PendingCommand(ctx context.Context, deviceID string) (*string, error) {
	entry, err := s.store.PendingCommand(ctx, deviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if entry.Command == "" {
		return nil, nil
	}
	log.Printf("Sending command '%s' to %s", entry.Command, deviceID)
	return &entry.Command, nil
}

// LatestReading returns the most recent reading for a device, or ErrNotFound.
func (s *DataService) LatestReading(ctx context.Context, deviceID string) (*models.SensorReading, error) {
	return s.store.LatestReading(ctx, deviceID)
}

// RecentReadings returns up to the history limit of readings for a device,
// newest first. The slice is never nil so an empty history encodes as [].
func (s *DataService) RecentReadings(ctx context.Context, deviceID string) ([]models.SensorReading, error) {
	rows, err := s.store.RecentReadings(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.SensorReading{}
	}
	return rows, nil
}

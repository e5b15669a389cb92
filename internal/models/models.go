package models

import "time"

// SensorReading represents one temperature/humidity measurement reported by a
// device. Rows are append-only: written once on ingestion, never updated.
type SensorReading struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DeviceID    string    `json:"device_id" gorm:"type:varchar(80);index;not null"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
}

// DeviceCommand holds the single pending command for a device. The unique
// index on DeviceID keeps it to at most one row per device; every set-call
// overwrites the command in place (last-write-wins).
type DeviceCommand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DeviceID  string    `json:"device_id" gorm:"type:varchar(80);uniqueIndex;not null"`
	Command   string    `json:"command" gorm:"type:varchar(80)"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingResponse is the wire representation of a SensorReading. The
// timestamp is rendered explicitly as ISO-8601 UTC with a trailing "Z".
type ReadingResponse struct {
	ID          uint    `json:"id"`
	DeviceID    string  `json:"device_id"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Timestamp   string  `json:"timestamp"`
}

// ToResponse converts a stored reading to its wire form.
func (r SensorReading) ToResponse() ReadingResponse {
	return ReadingResponse{
		ID:          r.ID,
		DeviceID:    r.DeviceID,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Timestamp:   r.Timestamp.UTC().Format("2006-01-02T15:04:05.999999") + "Z",
	}
}

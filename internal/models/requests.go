package models

// IngestRequest is the body of POST /api/v1/data. Temperature and humidity are
// pointers so that a present value of 0 is distinguishable from an absent
// field — 0 is a valid measurement and must not be rejected as missing.
type IngestRequest struct {
	DeviceID    string   `json:"device_id"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

// ControlRequest is the body of POST /api/v1/control.
type ControlRequest struct {
	DeviceID string `json:"device_id"`
	Command  string `json:"command"`
}

// CommandResponse is the body of GET /api/v1/commands. Command is null when
// the device has no pending command, which polling devices treat as a normal
// steady-state answer rather than an error.
type CommandResponse struct {
	Command *string `json:"command"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

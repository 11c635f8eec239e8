package models

import "time"

// LatestTemperature is the most recent device-reported temperature for one
// machine type. Overwritten on every ingest.
type LatestTemperature struct {
	MachineType string    `json:"machine_type"`
	Temperature float64   `json:"temperature"` // °C
	UpdatedAt   time.Time `json:"updated_at"`
}

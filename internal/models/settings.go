package models

import "machine_maintenance/internal/scoring"

// Settings is the single persisted service configuration: which temperature
// sensor mode is active, the full threshold table, and the device API key
// accepted on the temperature ingest endpoint.
type Settings struct {
	SensorMode string             `json:"sensor_mode"` // prototype_low_temp | shopfloor_high_temp
	Thresholds scoring.Thresholds `json:"thresholds"`
	APIKey     string             `json:"api_key"`
}

package models

import "time"

// Prediction is one persisted scoring result together with the readings
// that produced it. Immutable once stored.
type Prediction struct {
	ID              string    `json:"id"`
	MachineType     string    `json:"machine_type"`
	RunningHours    float64   `json:"running_hours"`
	FeedingRate     float64   `json:"feeding_rate"`
	Temperature     float64   `json:"temperature"`
	Vibration       float64   `json:"vibration"`
	MaintenanceDate string    `json:"maintenance_date"` // opaque, carried through unmodified
	PredictionDate  time.Time `json:"prediction_date"`
	RiskScore       float64   `json:"risk_score"`
	ConditionLevel  string    `json:"condition_level"` // Good | Medium | Critical
	Explanation     string    `json:"explanation"`
	Alerts          []string  `json:"alerts"`
}

package service

import (
	"context"
	"time"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/repository"
)

type Authorization interface {
	SignUp(p SignUpParams) (int, error)
	GenerateToken(email, password string) (string, error)
	// ParseToken returns the user ID and role carried by the token.
	ParseToken(accessToken string) (int, string, error)
	GetUser(id int) (*models.User, error)
}

// Prediction runs the risk-scoring engine against one reading and persists
// the outcome.
type Prediction interface {
	Predict(ctx context.Context, p PredictParams) (*PredictOutcome, error)
}

// History exposes persisted predictions with filtering and pagination.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.Prediction, error)
}

// Temperature handles device-side temperature ingestion and lookup.
type Temperature interface {
	Ingest(ctx context.Context, apiKey, machineType string, temperature float64) (*models.LatestTemperature, error)
	Latest(ctx context.Context, machineType string) (*models.LatestTemperature, error)
}

// Settings manages the persisted service configuration, initializing the
// built-in defaults on first access.
type Settings interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, s models.Settings) error
}

// Options carries deployment configuration injected from main.
type Options struct {
	SigningKey   string
	TokenTTL     time.Duration
	DeviceAPIKey string
}

// Root Service aggregates all sub-services.
type Service struct {
	Authorization
	Prediction
	History
	Temperature
	Settings
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	settings := NewSettingsService(repos.Settings, opts.DeviceAPIKey)
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
		Prediction:    NewPredictionService(repos.Predictions, repos.Temperature, settings),
		History:       NewHistoryService(repos.Predictions),
		Temperature:   NewTemperatureService(repos.Temperature, settings),
		Settings:      settings,
	}
}

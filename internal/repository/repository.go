package repository

import (
	"context"
	"database/sql"
	"time"

	"machine_maintenance/internal/models"
)

type Authorization interface {
	Create(u models.User) (int, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

// PredictionFilter narrows history queries. Zero values mean "no filter".
type PredictionFilter struct {
	MachineType string
	From        time.Time // inclusive
	To          time.Time // inclusive
	Limit       int
	Offset      int
}

type PredictionRepo interface {
	Insert(ctx context.Context, p models.Prediction) error
	List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error)
}

type TemperatureRepo interface {
	Upsert(ctx context.Context, t models.LatestTemperature) error
	// Get returns (nil, nil) when no reading has been ingested yet.
	Get(ctx context.Context, machineType string) (*models.LatestTemperature, error)
}

type SettingsRepo interface {
	// Load returns (nil, nil) when no settings row exists yet.
	Load(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

type Repository struct {
	Predictions PredictionRepo
	Temperature TemperatureRepo
	Settings    SettingsRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Predictions: NewPredictionSQLite(db),
		Temperature: NewTemperatureSQLite(db),
		Settings:    NewSettingsSQLite(db),
		Auth:        NewUserRepository(db),
	}
}

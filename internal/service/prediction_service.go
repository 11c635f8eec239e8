package service

import (
	"context"
	"fmt"
	"time"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/repository"
	"machine_maintenance/internal/scoring"

	"github.com/google/uuid"
)

// PredictParams is one scoring request. Temperature is optional: when nil,
// the latest device-ingested reading for the machine type is used instead.
type PredictParams struct {
	MachineType     string
	RunningHours    float64
	FeedingRate     float64
	Temperature     *float64
	Vibration       float64
	MaintenanceDate string
}

// PredictOutcome is the engine result together with the persisted record and
// the threshold context it was scored against.
type PredictOutcome struct {
	Prediction models.Prediction
	SensorMode string
	Thresholds scoring.ResolvedSet
}

type PredictionService struct {
	predRepo repository.PredictionRepo
	tempRepo repository.TemperatureRepo
	settings Settings
}

func NewPredictionService(predRepo repository.PredictionRepo, tempRepo repository.TemperatureRepo, settings Settings) *PredictionService {
	return &PredictionService{
		predRepo: predRepo,
		tempRepo: tempRepo,
		settings: settings,
	}
}

// Predict resolves thresholds and the temperature reading, runs the scoring
// engine and persists the result. The stored record is returned verbatim.
func (s *PredictionService) Predict(ctx context.Context, p PredictParams) (*PredictOutcome, error) {
	if !scoring.KnownMachineType(p.MachineType) {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownMachineType, p.MachineType)
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	temperature, err := s.resolveTemperature(ctx, p)
	if err != nil {
		return nil, err
	}

	set, err := scoring.Resolve(cfg.SensorMode, cfg.Thresholds, p.MachineType)
	if err != nil {
		return nil, err
	}

	result, err := scoring.Score(scoring.Reading{
		MachineType:  p.MachineType,
		RunningHours: p.RunningHours,
		FeedingRate:  p.FeedingRate,
		Temperature:  temperature,
		Vibration:    p.Vibration,
	}, set)
	if err != nil {
		return nil, err
	}

	pred := models.Prediction{
		ID:              uuid.NewString(),
		MachineType:     p.MachineType,
		RunningHours:    p.RunningHours,
		FeedingRate:     p.FeedingRate,
		Temperature:     temperature,
		Vibration:       p.Vibration,
		MaintenanceDate: p.MaintenanceDate,
		PredictionDate:  time.Now().UTC(),
		RiskScore:       result.RiskScore,
		ConditionLevel:  result.ConditionLevel,
		Explanation:     result.Explanation,
		Alerts:          result.Alerts,
	}
	if err := s.predRepo.Insert(ctx, pred); err != nil {
		return nil, err
	}

	return &PredictOutcome{
		Prediction: pred,
		SensorMode: cfg.SensorMode,
		Thresholds: result.Thresholds,
	}, nil
}

// resolveTemperature uses the caller-supplied value when present, otherwise
// the latest device reading for the machine type.
func (s *PredictionService) resolveTemperature(ctx context.Context, p PredictParams) (float64, error) {
	if p.Temperature != nil {
		return *p.Temperature, nil
	}
	latest, err := s.tempRepo.Get(ctx, p.MachineType)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, fmt.Errorf("%w for %s: provide temperature manually or ensure the sensor device is sending data",
			scoring.ErrMissingTemperature, p.MachineType)
	}
	return latest.Temperature, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/repository"
	"machine_maintenance/internal/scoring"
)

// ErrInvalidAPIKey rejects ingest calls whose device key does not match the
// configured one.
var ErrInvalidAPIKey = errors.New("invalid API key")

type TemperatureService struct {
	tempRepo repository.TemperatureRepo
	settings Settings
}

func NewTemperatureService(tempRepo repository.TemperatureRepo, settings Settings) *TemperatureService {
	return &TemperatureService{tempRepo: tempRepo, settings: settings}
}

// Ingest authenticates the device key against the stored configuration and
// upserts the latest temperature for the machine type.
func (s *TemperatureService) Ingest(ctx context.Context, apiKey, machineType string, temperature float64) (*models.LatestTemperature, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if apiKey == "" || apiKey != cfg.APIKey {
		return nil, ErrInvalidAPIKey
	}
	if !scoring.KnownMachineType(machineType) {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownMachineType, machineType)
	}

	reading := models.LatestTemperature{
		MachineType: machineType,
		Temperature: temperature,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.tempRepo.Upsert(ctx, reading); err != nil {
		return nil, err
	}
	return &reading, nil
}

// Latest returns the most recent device reading for a machine type, or
// (nil, nil) when nothing has been ingested yet.
func (s *TemperatureService) Latest(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	if !scoring.KnownMachineType(machineType) {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownMachineType, machineType)
	}
	return s.tempRepo.Get(ctx, machineType)
}

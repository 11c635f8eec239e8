package service

import (
	"context"
	"fmt"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/repository"
	"machine_maintenance/internal/scoring"
)

type SettingsService struct {
	repo          repository.SettingsRepo
	defaultAPIKey string
}

func NewSettingsService(repo repository.SettingsRepo, defaultAPIKey string) *SettingsService {
	return &SettingsService{repo: repo, defaultAPIKey: defaultAPIKey}
}

// Get loads the persisted settings. On first run the built-in defaults are
// persisted and returned, so every later evaluation sees the same snapshot.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	def := models.Settings{
		SensorMode: scoring.SensorModePrototypeLowTemp,
		Thresholds: scoring.DefaultThresholds(),
		APIKey:     s.defaultAPIKey,
	}
	if err := s.repo.Save(ctx, def); err != nil {
		return models.Settings{}, err
	}
	return def, nil
}

// Update validates and persists new settings. Band validation happens here,
// at the configuration-write boundary, so scoring never runs against a
// degenerate band. An empty API key keeps the current one.
func (s *SettingsService) Update(ctx context.Context, next models.Settings) error {
	switch next.SensorMode {
	case scoring.SensorModePrototypeLowTemp, scoring.SensorModeShopfloorHighTemp:
	default:
		return fmt.Errorf("unknown sensor mode %q", next.SensorMode)
	}

	if err := next.Thresholds.Validate(); err != nil {
		return err
	}

	if next.APIKey == "" {
		current, err := s.Get(ctx)
		if err != nil {
			return err
		}
		next.APIKey = current.APIKey
	}

	return s.repo.Save(ctx, next)
}

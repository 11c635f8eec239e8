package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/repository"
	"machine_maintenance/internal/scoring"
)

// ---- shared fakes for service tests ----

type fakePredictionRepo struct {
	insertErr error
	inserted  []models.Prediction

	listResp   []models.Prediction
	listErr    error
	lastFilter repository.PredictionFilter
}

func (f *fakePredictionRepo) Insert(ctx context.Context, p models.Prediction) error {
	f.inserted = append(f.inserted, p)
	return f.insertErr
}

func (f *fakePredictionRepo) List(ctx context.Context, filter repository.PredictionFilter) ([]models.Prediction, error) {
	f.lastFilter = filter
	return f.listResp, f.listErr
}

type fakeTemperatureRepo struct {
	getResp   *models.LatestTemperature
	getErr    error
	upsertErr error
	upserted  []models.LatestTemperature
}

func (f *fakeTemperatureRepo) Upsert(ctx context.Context, t models.LatestTemperature) error {
	f.upserted = append(f.upserted, t)
	return f.upsertErr
}

func (f *fakeTemperatureRepo) Get(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	return f.getResp, f.getErr
}

type fakeSettings struct {
	resp      models.Settings
	getErr    error
	updateErr error
	updated   []models.Settings
}

func (f *fakeSettings) Get(ctx context.Context) (models.Settings, error) {
	return f.resp, f.getErr
}

func (f *fakeSettings) Update(ctx context.Context, s models.Settings) error {
	f.updated = append(f.updated, s)
	return f.updateErr
}

func shopfloorSettings() models.Settings {
	return models.Settings{
		SensorMode: scoring.SensorModeShopfloorHighTemp,
		Thresholds: scoring.DefaultThresholds(),
		APIKey:     "device-key",
	}
}

func floatPtr(v float64) *float64 { return &v }

// ---- tests ----

func TestPredictionService_Predict_UnknownMachineType(t *testing.T) {
	svc := NewPredictionService(&fakePredictionRepo{}, &fakeTemperatureRepo{}, &fakeSettings{resp: shopfloorSettings()})

	_, err := svc.Predict(context.Background(), PredictParams{MachineType: "Press"})
	if !errors.Is(err, scoring.ErrUnknownMachineType) {
		t.Fatalf("expected ErrUnknownMachineType, got %v", err)
	}
}

func TestPredictionService_Predict_MissingTemperature(t *testing.T) {
	svc := NewPredictionService(&fakePredictionRepo{}, &fakeTemperatureRepo{}, &fakeSettings{resp: shopfloorSettings()})

	_, err := svc.Predict(context.Background(), PredictParams{
		MachineType: scoring.MachineCNC, // no Temperature, nothing ingested
	})
	if !errors.Is(err, scoring.ErrMissingTemperature) {
		t.Fatalf("expected ErrMissingTemperature, got %v", err)
	}
}

func TestPredictionService_Predict_UsesStoredTemperature(t *testing.T) {
	prepo := &fakePredictionRepo{}
	trepo := &fakeTemperatureRepo{
		getResp: &models.LatestTemperature{MachineType: scoring.MachineCNC, Temperature: 60},
	}
	svc := NewPredictionService(prepo, trepo, &fakeSettings{resp: shopfloorSettings()})

	out, err := svc.Predict(context.Background(), PredictParams{
		MachineType:  scoring.MachineCNC,
		RunningHours: 5000,
		FeedingRate:  1000,
		Vibration:    50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Prediction.Temperature != 60 {
		t.Fatalf("expected stored temperature 60, got %v", out.Prediction.Temperature)
	}
	if out.Prediction.RiskScore != 21.15 {
		t.Fatalf("risk score = %v, want 21.15", out.Prediction.RiskScore)
	}
}

func TestPredictionService_Predict_PersistsResult(t *testing.T) {
	prepo := &fakePredictionRepo{}
	svc := NewPredictionService(prepo, &fakeTemperatureRepo{}, &fakeSettings{resp: shopfloorSettings()})

	t0 := time.Now().UTC()
	out, err := svc.Predict(context.Background(), PredictParams{
		MachineType:     scoring.MachineCNC,
		RunningHours:    5000,
		FeedingRate:     1000,
		Temperature:     floatPtr(60),
		Vibration:       50,
		MaintenanceDate: "2024-01-01",
	})
	t1 := time.Now().UTC()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prepo.inserted) != 1 {
		t.Fatalf("expected 1 inserted prediction, got %d", len(prepo.inserted))
	}
	stored := prepo.inserted[0]
	if stored.ID == "" {
		t.Fatalf("expected generated prediction ID")
	}
	if stored.PredictionDate.Before(t0) || stored.PredictionDate.After(t1) {
		t.Fatalf("prediction date %v not within [%v, %v]", stored.PredictionDate, t0, t1)
	}
	if stored.MaintenanceDate != "2024-01-01" {
		t.Fatalf("maintenance date must be carried through unmodified, got %q", stored.MaintenanceDate)
	}
	if stored.ConditionLevel != scoring.ConditionGood {
		t.Fatalf("condition = %s, want Good", stored.ConditionLevel)
	}
	if !reflect.DeepEqual(stored, out.Prediction) {
		t.Fatalf("outcome must return the stored record verbatim")
	}
	if out.SensorMode != scoring.SensorModeShopfloorHighTemp {
		t.Fatalf("unexpected sensor mode: %s", out.SensorMode)
	}
	if out.Thresholds.Temperature.Green != 75 {
		t.Fatalf("unexpected resolved thresholds: %+v", out.Thresholds)
	}
}

func TestPredictionService_Predict_PartialConfigFails(t *testing.T) {
	cfg := shopfloorSettings()
	cfg.Thresholds.Vibration = map[string]scoring.Band{
		scoring.MachineCNC: {Green: 70, Yellow: 100},
	}
	svc := NewPredictionService(&fakePredictionRepo{}, &fakeTemperatureRepo{}, &fakeSettings{resp: cfg})

	_, err := svc.Predict(context.Background(), PredictParams{
		MachineType: scoring.MachineEDM,
		Temperature: floatPtr(50),
	})
	if !errors.Is(err, scoring.ErrConfigIncomplete) {
		t.Fatalf("expected ErrConfigIncomplete, got %v", err)
	}
}

func TestPredictionService_Predict_InsertErrorPropagates(t *testing.T) {
	prepo := &fakePredictionRepo{insertErr: errors.New("disk full")}
	svc := NewPredictionService(prepo, &fakeTemperatureRepo{}, &fakeSettings{resp: shopfloorSettings()})

	_, err := svc.Predict(context.Background(), PredictParams{
		MachineType: scoring.MachineCNC,
		Temperature: floatPtr(60),
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

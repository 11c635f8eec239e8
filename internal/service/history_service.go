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

// HistoryFilter narrows prediction history queries. Zero times mean no bound.
type HistoryFilter struct {
	MachineType string
	From        time.Time // inclusive
	To          time.Time // inclusive
	Limit       int
	Offset      int
}

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

type HistoryService struct {
	predRepo repository.PredictionRepo
}

func NewHistoryService(predRepo repository.PredictionRepo) *HistoryService {
	return &HistoryService{predRepo: predRepo}
}

// List returns persisted predictions, newest first.
func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.Prediction, error) {
	if f.MachineType != "" && !scoring.KnownMachineType(f.MachineType) {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownMachineType, f.MachineType)
	}

	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	return s.predRepo.List(ctx, repository.PredictionFilter{
		MachineType: f.MachineType,
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	})
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

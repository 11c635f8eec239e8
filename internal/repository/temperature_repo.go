package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"machine_maintenance/internal/models"
)

type TemperatureSQLite struct {
	db *sql.DB
}

func NewTemperatureSQLite(db *sql.DB) *TemperatureSQLite { return &TemperatureSQLite{db: db} }

var _ TemperatureRepo = (*TemperatureSQLite)(nil)

const (
	upsertTemperatureSQL = `
		INSERT INTO latest_temperature (machine_type, temperature, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(machine_type) DO UPDATE SET
			temperature=excluded.temperature,
			updated_at=excluded.updated_at
	`

	selectTemperatureSQL = `
		SELECT machine_type, temperature, updated_at
		FROM latest_temperature WHERE machine_type = ?
	`
)

// Upsert stores the latest device temperature for one machine type,
// overwriting any previous reading.
func (r *TemperatureSQLite) Upsert(ctx context.Context, t models.LatestTemperature) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := t.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertTemperatureSQL, t.MachineType, t.Temperature, tsUTC)
	return err
}

// Get fetches the latest reading for a machine type. Returns (nil, nil) if
// nothing has been ingested yet.
func (r *TemperatureSQLite) Get(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	row := r.db.QueryRowContext(ctx, selectTemperatureSQL, machineType)

	var t models.LatestTemperature
	if err := row.Scan(&t.MachineType, &t.Temperature, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

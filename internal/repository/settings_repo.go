package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/scoring"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite { return &SettingsSQLite{db: db} }

var _ SettingsRepo = (*SettingsSQLite)(nil)

const (
	settingsRowID = 1

	upsertSettingsSQL = `
		INSERT INTO settings (id, sensor_mode, thresholds, api_key)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sensor_mode=excluded.sensor_mode,
			thresholds=excluded.thresholds,
			api_key=excluded.api_key
	`

	selectSettingsSQL = `SELECT sensor_mode, thresholds, api_key FROM settings WHERE id=?`
)

// Save updates or inserts the settings row (id always 1). The threshold table
// is stored as a JSON document.
func (r *SettingsSQLite) Save(ctx context.Context, s models.Settings) error {
	thresholdsJSON, err := json.Marshal(s.Thresholds)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertSettingsSQL, settingsRowID, s.SensorMode, string(thresholdsJSON), s.APIKey)
	return err
}

// Load fetches the single settings row. Returns (nil, nil) if no settings
// have been persisted yet (first run).
func (r *SettingsSQLite) Load(ctx context.Context) (*models.Settings, error) {
	row := r.db.QueryRowContext(ctx, selectSettingsSQL, settingsRowID)

	var s models.Settings
	var thresholdsStr string
	if err := row.Scan(&s.SensorMode, &thresholdsStr, &s.APIKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var t scoring.Thresholds
	if err := json.Unmarshal([]byte(thresholdsStr), &t); err != nil {
		return nil, err
	}
	s.Thresholds = t

	return &s, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"machine_maintenance/internal/models"

	"github.com/google/uuid"
)

type PredictionSQLite struct {
	db *sql.DB
}

func NewPredictionSQLite(db *sql.DB) *PredictionSQLite { return &PredictionSQLite{db: db} }

var _ PredictionRepo = (*PredictionSQLite)(nil)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"; lexicographic order matches
// chronological order, which the range filters rely on.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const insertPredictionSQL = `
	INSERT INTO predictions
		(id, machine_type, running_hours, feeding_rate, temperature, vibration,
		 maintenance_date, prediction_date, risk_score, condition_level, explanation, alerts)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Insert stores one prediction. If ID or PredictionDate are empty, they’re set.
func (r *PredictionSQLite) Insert(ctx context.Context, p models.Prediction) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PredictionDate.IsZero() {
		p.PredictionDate = time.Now().UTC()
	} else {
		p.PredictionDate = p.PredictionDate.UTC()
	}

	alertsJSON, err := json.Marshal(p.Alerts)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertPredictionSQL,
		p.ID,
		p.MachineType,
		p.RunningHours,
		p.FeedingRate,
		p.Temperature,
		p.Vibration,
		p.MaintenanceDate,
		p.PredictionDate.Format(sqliteTimeLayout),
		p.RiskScore,
		p.ConditionLevel,
		p.Explanation,
		string(alertsJSON),
	)
	return err
}

// List returns predictions matching the filter, newest first.
func (r *PredictionSQLite) List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error) {
	var (
		conds []string
		args  []any
	)

	if f.MachineType != "" {
		conds = append(conds, "machine_type = ?")
		args = append(args, f.MachineType)
	}
	if !f.From.IsZero() {
		conds = append(conds, "prediction_date >= ?")
		args = append(args, f.From.UTC().Format(sqliteTimeLayout))
	}
	if !f.To.IsZero() {
		conds = append(conds, "prediction_date <= ?")
		args = append(args, f.To.UTC().Format(sqliteTimeLayout))
	}

	q := `SELECT id, machine_type, running_hours, feeding_rate, temperature, vibration,
		maintenance_date, prediction_date, risk_score, condition_level, explanation, alerts
		FROM predictions`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY prediction_date DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Prediction, 0, 64)
	for rows.Next() {
		var p models.Prediction
		var alertsStr string
		if err := rows.Scan(
			&p.ID,
			&p.MachineType,
			&p.RunningHours,
			&p.FeedingRate,
			&p.Temperature,
			&p.Vibration,
			&p.MaintenanceDate,
			&p.PredictionDate,
			&p.RiskScore,
			&p.ConditionLevel,
			&p.Explanation,
			&alertsStr,
		); err != nil {
			return nil, err
		}
		p.PredictionDate = p.PredictionDate.UTC()

		if alertsStr != "" {
			if err := json.Unmarshal([]byte(alertsStr), &p.Alerts); err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

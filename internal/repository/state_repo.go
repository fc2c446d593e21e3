package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"enet_panel/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	deviceStateRowID = 1

	upsertStateSQL = `
		INSERT INTO device_state (id, led_on, automatic, manual_speed, measured_speed, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			led_on=excluded.led_on,
			automatic=excluded.automatic,
			manual_speed=excluded.manual_speed,
			measured_speed=excluded.measured_speed,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, led_on, automatic, manual_speed, measured_speed, updated_at
		FROM device_state WHERE id=?
	`
)

// Save upserts the single device_state row.
func (r *StateSQLite) Save(ctx context.Context, state models.DeviceState) error {
	ts := state.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStateSQL,
		deviceStateRowID,
		state.LEDOn,
		state.Automatic,
		state.ManualSpeed,
		state.MeasuredSpeed,
		ts,
	)
	if err != nil {
		return fmt.Errorf("save device state: %w", err)
	}
	return nil
}

// Load returns the zero state (ID 0) when nothing was saved yet.
func (r *StateSQLite) Load(ctx context.Context) (models.DeviceState, error) {
	var s models.DeviceState
	err := r.db.QueryRowContext(ctx, selectStateSQL, deviceStateRowID).Scan(
		&s.ID,
		&s.LEDOn,
		&s.Automatic,
		&s.ManualSpeed,
		&s.MeasuredSpeed,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeviceState{}, nil
		}
		return models.DeviceState{}, fmt.Errorf("load device state: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/central-patrimonium/roster/pkg/db"
)

// GetRotationConfig retrieves the singleton rotation-parity record.
// Returns (nil, nil) when the record has never been saved; the resolver
// falls back to even-day parity and placeholder leader names.
func (d *DB) GetRotationConfig(ctx context.Context) (*db.RotationConfig, error) {
	var cfg db.RotationConfig
	var dayA, dayB, night, nightA, nightB, manager *string

	err := d.pool.QueryRow(ctx, `
		SELECT parity_rule, day_leader_a, day_leader_b, night_leader,
			night_leader_a, night_leader_b, facility_manager
		FROM rotation_config WHERE id = 1
	`).Scan(&cfg.ParityRule, &dayA, &dayB, &night, &nightA, &nightB, &manager)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rotation config: %w", err)
	}

	cfg.DayLeaderA = derefString(dayA)
	cfg.DayLeaderB = derefString(dayB)
	cfg.NightLeader = derefString(night)
	cfg.NightLeaderA = derefString(nightA)
	cfg.NightLeaderB = derefString(nightB)
	cfg.FacilityManager = derefString(manager)

	return &cfg, nil
}

// SaveRotationConfig upserts the singleton rotation-parity record
func (d *DB) SaveRotationConfig(ctx context.Context, cfg *db.RotationConfig) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO rotation_config (id, parity_rule, day_leader_a, day_leader_b,
			night_leader, night_leader_a, night_leader_b, facility_manager)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			parity_rule = EXCLUDED.parity_rule,
			day_leader_a = EXCLUDED.day_leader_a,
			day_leader_b = EXCLUDED.day_leader_b,
			night_leader = EXCLUDED.night_leader,
			night_leader_a = EXCLUDED.night_leader_a,
			night_leader_b = EXCLUDED.night_leader_b,
			facility_manager = EXCLUDED.facility_manager
	`,
		cfg.ParityRule,
		nullableString(cfg.DayLeaderA), nullableString(cfg.DayLeaderB),
		nullableString(cfg.NightLeader), nullableString(cfg.NightLeaderA),
		nullableString(cfg.NightLeaderB), nullableString(cfg.FacilityManager),
	)
	if err != nil {
		return fmt.Errorf("failed to save rotation config: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/central-patrimonium/roster/pkg/db"
)

// GetStatuses retrieves all manually-set live statuses
func (d *DB) GetStatuses(ctx context.Context) ([]db.OperatorStatus, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT operator_id, status, updated_at FROM operator_status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query operator statuses: %w", err)
	}
	defer rows.Close()

	var statuses []db.OperatorStatus
	for rows.Next() {
		var s db.OperatorStatus
		if err := rows.Scan(&s.OperatorID, &s.Status, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operator status: %w", err)
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operator statuses: %w", err)
	}

	return statuses, nil
}

// UpsertStatus sets the live status for one operator
func (d *DB) UpsertStatus(ctx context.Context, status *db.OperatorStatus) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO operator_status (operator_id, status, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (operator_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`, status.OperatorID, status.Status, status.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert operator status: %w", err)
	}
	return nil
}

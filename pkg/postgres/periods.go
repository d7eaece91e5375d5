package postgres

import (
	"context"
	"fmt"

	"github.com/central-patrimonium/roster/pkg/db"
)

// GetFocusPeriods retrieves all standing focus periods in stored order.
// The resolver's first-match rule depends on this ordering.
func (d *DB) GetFocusPeriods(ctx context.Context) ([]db.FocusPeriod, error) {
	return d.queryFocusPeriods(ctx, `
		SELECT id, operator_id, start_time, end_time, focus, observation, position
		FROM focus_periods ORDER BY operator_id, position
	`)
}

// GetFocusPeriodsByOperator retrieves one operator's standing focus periods
// in stored order
func (d *DB) GetFocusPeriodsByOperator(ctx context.Context, operatorID string) ([]db.FocusPeriod, error) {
	return d.queryFocusPeriods(ctx, `
		SELECT id, operator_id, start_time, end_time, focus, observation, position
		FROM focus_periods WHERE operator_id = $1 ORDER BY position
	`, operatorID)
}

func (d *DB) queryFocusPeriods(ctx context.Context, query string, args ...any) ([]db.FocusPeriod, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query focus periods: %w", err)
	}
	defer rows.Close()

	var periods []db.FocusPeriod
	for rows.Next() {
		var p db.FocusPeriod
		var observation *string
		if err := rows.Scan(&p.ID, &p.OperatorID, &p.StartTime, &p.EndTime, &p.Focus, &observation, &p.Position); err != nil {
			return nil, fmt.Errorf("failed to scan focus period: %w", err)
		}
		p.Observation = derefString(observation)
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating focus periods: %w", err)
	}

	return periods, nil
}

// InsertFocusPeriod inserts a standing focus period at the end of the
// operator's stored order
func (d *DB) InsertFocusPeriod(ctx context.Context, period *db.FocusPeriod) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO focus_periods (id, operator_id, start_time, end_time, focus, observation, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM focus_periods WHERE operator_id = $2))
	`, period.ID, period.OperatorID, period.StartTime, period.EndTime, period.Focus, nullableString(period.Observation))
	if err != nil {
		return fmt.Errorf("failed to insert focus period: %w", err)
	}
	return nil
}

// DeleteFocusPeriod deletes a standing focus period
func (d *DB) DeleteFocusPeriod(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM focus_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete focus period: %w", err)
	}
	return nil
}

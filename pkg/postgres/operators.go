package postgres

import (
	"context"
	"fmt"

	"github.com/central-patrimonium/roster/pkg/db"
)

const operatorColumns = `id, name, active, shift_kind, rotation_group,
	start_time, end_time, saturday_start, saturday_end, sunday_start, sunday_end,
	weekdays, default_focus, color`

// GetOperators retrieves all operator records
func (d *DB) GetOperators(ctx context.Context) ([]db.Operator, error) {
	return d.queryOperators(ctx, fmt.Sprintf(`
		SELECT %s FROM operators ORDER BY name
	`, operatorColumns))
}

// GetActiveOperators retrieves operators eligible for resolution
func (d *DB) GetActiveOperators(ctx context.Context) ([]db.Operator, error) {
	return d.queryOperators(ctx, fmt.Sprintf(`
		SELECT %s FROM operators WHERE active ORDER BY name
	`, operatorColumns))
}

func (d *DB) queryOperators(ctx context.Context, query string) ([]db.Operator, error) {
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query operators: %w", err)
	}
	defer rows.Close()

	var operators []db.Operator
	for rows.Next() {
		var o db.Operator
		var rotationGroup, satStart, satEnd, sunStart, sunEnd, weekdays *string
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Active, &o.ShiftKind, &rotationGroup,
			&o.StartTime, &o.EndTime, &satStart, &satEnd, &sunStart, &sunEnd,
			&weekdays, &o.DefaultFocus, &o.Color,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		o.RotationGroup = derefString(rotationGroup)
		o.SaturdayStart = derefString(satStart)
		o.SaturdayEnd = derefString(satEnd)
		o.SundayStart = derefString(sunStart)
		o.SundayEnd = derefString(sunEnd)
		o.Weekdays = derefString(weekdays)
		operators = append(operators, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operators: %w", err)
	}

	return operators, nil
}

// InsertOperator inserts a new operator record
func (d *DB) InsertOperator(ctx context.Context, operator *db.Operator) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO operators (id, name, active, shift_kind, rotation_group,
			start_time, end_time, saturday_start, saturday_end, sunday_start, sunday_end,
			weekdays, default_focus, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		operator.ID, operator.Name, operator.Active, operator.ShiftKind,
		nullableString(operator.RotationGroup),
		operator.StartTime, operator.EndTime,
		nullableString(operator.SaturdayStart), nullableString(operator.SaturdayEnd),
		nullableString(operator.SundayStart), nullableString(operator.SundayEnd),
		nullableString(operator.Weekdays), operator.DefaultFocus, operator.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to insert operator: %w", err)
	}
	return nil
}

// UpdateOperator updates an existing operator record
func (d *DB) UpdateOperator(ctx context.Context, operator *db.Operator) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE operators SET name = $2, active = $3, shift_kind = $4, rotation_group = $5,
			start_time = $6, end_time = $7, saturday_start = $8, saturday_end = $9,
			sunday_start = $10, sunday_end = $11, weekdays = $12, default_focus = $13, color = $14
		WHERE id = $1
	`,
		operator.ID, operator.Name, operator.Active, operator.ShiftKind,
		nullableString(operator.RotationGroup),
		operator.StartTime, operator.EndTime,
		nullableString(operator.SaturdayStart), nullableString(operator.SaturdayEnd),
		nullableString(operator.SundayStart), nullableString(operator.SundayEnd),
		nullableString(operator.Weekdays), operator.DefaultFocus, operator.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to update operator: %w", err)
	}
	return nil
}

// DeleteOperator deletes an operator and its dependent records
func (d *DB) DeleteOperator(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM operators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete operator: %w", err)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

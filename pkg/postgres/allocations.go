package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/central-patrimonium/roster/pkg/db"
)

// GetAllocationsByDates retrieves manual allocations whose shift date is in
// the given set (the panel asks for today and yesterday; the weekend view
// asks for the next Saturday and Sunday)
func (d *DB) GetAllocationsByDates(ctx context.Context, dates []string) ([]db.ManualAllocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, operator_id, date, start_time, end_time, focus, leader, observation
		FROM manual_allocations
		WHERE date = ANY($1)
		ORDER BY date, start_time
	`, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to query manual allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.ManualAllocation
	for rows.Next() {
		var a db.ManualAllocation
		var leader, observation *string
		if err := rows.Scan(&a.ID, &a.OperatorID, &a.Date, &a.StartTime, &a.EndTime, &a.Focus, &leader, &observation); err != nil {
			return nil, fmt.Errorf("failed to scan manual allocation: %w", err)
		}
		a.Leader = derefString(leader)
		a.Observation = derefString(observation)
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manual allocations: %w", err)
	}

	return allocations, nil
}

// GetAllocationPeriods retrieves the focus sub-periods of one manual
// allocation in stored order
func (d *DB) GetAllocationPeriods(ctx context.Context, allocationID string) ([]db.AllocationPeriod, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, allocation_id, start_time, end_time, focus, observation, position
		FROM allocation_periods WHERE allocation_id = $1 ORDER BY position
	`, allocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation periods: %w", err)
	}
	defer rows.Close()

	var periods []db.AllocationPeriod
	for rows.Next() {
		var p db.AllocationPeriod
		var observation *string
		if err := rows.Scan(&p.ID, &p.AllocationID, &p.StartTime, &p.EndTime, &p.Focus, &observation, &p.Position); err != nil {
			return nil, fmt.Errorf("failed to scan allocation period: %w", err)
		}
		p.Observation = derefString(observation)
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation periods: %w", err)
	}

	return periods, nil
}

// GetAllocationByID retrieves one manual allocation, or (nil, nil) when no
// record exists
func (d *DB) GetAllocationByID(ctx context.Context, id string) (*db.ManualAllocation, error) {
	var a db.ManualAllocation
	var leader, observation *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, operator_id, date, start_time, end_time, focus, leader, observation
		FROM manual_allocations WHERE id = $1
	`, id).Scan(&a.ID, &a.OperatorID, &a.Date, &a.StartTime, &a.EndTime, &a.Focus, &leader, &observation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query manual allocation: %w", err)
	}
	a.Leader = derefString(leader)
	a.Observation = derefString(observation)
	return &a, nil
}

// InsertAllocation inserts a manual allocation record
func (d *DB) InsertAllocation(ctx context.Context, allocation *db.ManualAllocation) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO manual_allocations (id, operator_id, date, start_time, end_time, focus, leader, observation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		allocation.ID, allocation.OperatorID, allocation.Date,
		allocation.StartTime, allocation.EndTime, allocation.Focus,
		nullableString(allocation.Leader), nullableString(allocation.Observation),
	)
	if err != nil {
		return fmt.Errorf("failed to insert manual allocation: %w", err)
	}
	return nil
}

// InsertAllocationPeriod appends a focus sub-period to a manual allocation
func (d *DB) InsertAllocationPeriod(ctx context.Context, period *db.AllocationPeriod) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO allocation_periods (id, allocation_id, start_time, end_time, focus, observation, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM allocation_periods WHERE allocation_id = $2))
	`, period.ID, period.AllocationID, period.StartTime, period.EndTime, period.Focus, nullableString(period.Observation))
	if err != nil {
		return fmt.Errorf("failed to insert allocation period: %w", err)
	}
	return nil
}

// DeleteAllocation deletes a manual allocation; its sub-periods go with it
func (d *DB) DeleteAllocation(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM manual_allocations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manual allocation: %w", err)
	}
	return nil
}

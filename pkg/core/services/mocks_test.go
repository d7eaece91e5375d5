package services

import (
	"context"

	"github.com/central-patrimonium/roster/pkg/db"
)

// mockDatabase implements db.Database for service tests
type mockDatabase struct {
	operators         []db.Operator
	periods           []db.FocusPeriod
	allocations       []db.ManualAllocation
	allocationPeriods map[string][]db.AllocationPeriod
	config            *db.RotationConfig
	statuses          []db.OperatorStatus

	insertedAllocations []*db.ManualAllocation
	insertedPeriods     []*db.AllocationPeriod
	upsertedStatuses    []*db.OperatorStatus

	err error // when set, every read fails with it
}

func (m *mockDatabase) GetOperators(ctx context.Context) ([]db.Operator, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.operators, nil
}

func (m *mockDatabase) GetActiveOperators(ctx context.Context) ([]db.Operator, error) {
	if m.err != nil {
		return nil, m.err
	}
	active := make([]db.Operator, 0, len(m.operators))
	for _, op := range m.operators {
		if op.Active {
			active = append(active, op)
		}
	}
	return active, nil
}

func (m *mockDatabase) InsertOperator(ctx context.Context, operator *db.Operator) error {
	m.operators = append(m.operators, *operator)
	return nil
}

func (m *mockDatabase) UpdateOperator(ctx context.Context, operator *db.Operator) error {
	return nil
}

func (m *mockDatabase) DeleteOperator(ctx context.Context, id string) error {
	return nil
}

func (m *mockDatabase) GetFocusPeriods(ctx context.Context) ([]db.FocusPeriod, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.periods, nil
}

func (m *mockDatabase) GetFocusPeriodsByOperator(ctx context.Context, operatorID string) ([]db.FocusPeriod, error) {
	if m.err != nil {
		return nil, m.err
	}
	var periods []db.FocusPeriod
	for _, p := range m.periods {
		if p.OperatorID == operatorID {
			periods = append(periods, p)
		}
	}
	return periods, nil
}

func (m *mockDatabase) InsertFocusPeriod(ctx context.Context, period *db.FocusPeriod) error {
	m.periods = append(m.periods, *period)
	return nil
}

func (m *mockDatabase) DeleteFocusPeriod(ctx context.Context, id string) error {
	return nil
}

func (m *mockDatabase) GetAllocationsByDates(ctx context.Context, dates []string) ([]db.ManualAllocation, error) {
	if m.err != nil {
		return nil, m.err
	}
	wanted := make(map[string]bool, len(dates))
	for _, date := range dates {
		wanted[date] = true
	}
	var matches []db.ManualAllocation
	for _, alloc := range m.allocations {
		if wanted[alloc.Date] {
			matches = append(matches, alloc)
		}
	}
	return matches, nil
}

func (m *mockDatabase) GetAllocationByID(ctx context.Context, id string) (*db.ManualAllocation, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, alloc := range m.allocations {
		if alloc.ID == id {
			found := alloc
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockDatabase) GetAllocationPeriods(ctx context.Context, allocationID string) ([]db.AllocationPeriod, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.allocationPeriods[allocationID], nil
}

func (m *mockDatabase) InsertAllocation(ctx context.Context, allocation *db.ManualAllocation) error {
	m.insertedAllocations = append(m.insertedAllocations, allocation)
	m.allocations = append(m.allocations, *allocation)
	return nil
}

func (m *mockDatabase) InsertAllocationPeriod(ctx context.Context, period *db.AllocationPeriod) error {
	m.insertedPeriods = append(m.insertedPeriods, period)
	if m.allocationPeriods == nil {
		m.allocationPeriods = make(map[string][]db.AllocationPeriod)
	}
	m.allocationPeriods[period.AllocationID] = append(m.allocationPeriods[period.AllocationID], *period)
	return nil
}

func (m *mockDatabase) DeleteAllocation(ctx context.Context, id string) error {
	return nil
}

func (m *mockDatabase) GetRotationConfig(ctx context.Context) (*db.RotationConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *mockDatabase) SaveRotationConfig(ctx context.Context, cfg *db.RotationConfig) error {
	m.config = cfg
	return nil
}

func (m *mockDatabase) GetStatuses(ctx context.Context) ([]db.OperatorStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statuses, nil
}

func (m *mockDatabase) UpsertStatus(ctx context.Context, status *db.OperatorStatus) error {
	m.upsertedStatuses = append(m.upsertedStatuses, status)
	return nil
}

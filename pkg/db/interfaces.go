package db

import "context"

// OperatorStore defines the interface for operator database operations
type OperatorStore interface {
	GetOperators(ctx context.Context) ([]Operator, error)
	GetActiveOperators(ctx context.Context) ([]Operator, error)
	InsertOperator(ctx context.Context, operator *Operator) error
	UpdateOperator(ctx context.Context, operator *Operator) error
	DeleteOperator(ctx context.Context, id string) error
}

// PeriodStore defines the interface for standing focus-period operations
type PeriodStore interface {
	GetFocusPeriods(ctx context.Context) ([]FocusPeriod, error)
	GetFocusPeriodsByOperator(ctx context.Context, operatorID string) ([]FocusPeriod, error)
	InsertFocusPeriod(ctx context.Context, period *FocusPeriod) error
	DeleteFocusPeriod(ctx context.Context, id string) error
}

// AllocationStore defines the interface for manual-allocation operations
type AllocationStore interface {
	GetAllocationsByDates(ctx context.Context, dates []string) ([]ManualAllocation, error)
	GetAllocationByID(ctx context.Context, id string) (*ManualAllocation, error)
	GetAllocationPeriods(ctx context.Context, allocationID string) ([]AllocationPeriod, error)
	InsertAllocation(ctx context.Context, allocation *ManualAllocation) error
	InsertAllocationPeriod(ctx context.Context, period *AllocationPeriod) error
	DeleteAllocation(ctx context.Context, id string) error
}

// ConfigStore defines the interface for the singleton rotation config.
// GetRotationConfig returns (nil, nil) when no record exists yet; callers
// fall back to the documented defaults.
type ConfigStore interface {
	GetRotationConfig(ctx context.Context) (*RotationConfig, error)
	SaveRotationConfig(ctx context.Context, cfg *RotationConfig) error
}

// StatusStore defines the interface for the manually-set live status
type StatusStore interface {
	GetStatuses(ctx context.Context) ([]OperatorStatus, error)
	UpsertStatus(ctx context.Context, status *OperatorStatus) error
}

// Database aggregates every store the application needs.
// The postgres.DB implementation satisfies it.
type Database interface {
	OperatorStore
	PeriodStore
	AllocationStore
	ConfigStore
	StatusStore
}

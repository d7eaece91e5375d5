package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/resolver"
	"github.com/central-patrimonium/roster/pkg/db"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// NewAllocation is the validated input for creating a manual allocation
type NewAllocation struct {
	OperatorID  string `validate:"required,uuid"`
	Date        string `validate:"required,datetime=2006-01-02"`
	StartTime   string `validate:"required,datetime=15:04"`
	EndTime     string `validate:"required,datetime=15:04"`
	Focus       string `validate:"required"`
	Leader      string
	Observation string
}

// NewAllocationPeriod is the validated input for appending a focus
// sub-period to an existing manual allocation
type NewAllocationPeriod struct {
	AllocationID string `validate:"required,uuid"`
	StartTime    string `validate:"required,datetime=15:04"`
	EndTime      string `validate:"required,datetime=15:04"`
	Focus        string `validate:"required"`
	Observation  string
}

// AddAllocation validates and persists a manual allocation. The window may
// wrap past midnight (end before start); a zero-length window and any
// overlap with the operator's existing allocations on the same date are
// rejected.
func AddAllocation(ctx context.Context, database db.Database, logger *zap.Logger, input NewAllocation) (*db.ManualAllocation, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("allocation validation failed: %w", err)
	}

	focus, ok := canonicalFocus(input.Focus)
	if !ok {
		return nil, fmt.Errorf("unknown focus %q", input.Focus)
	}

	start := resolver.TimeToMinutes(input.StartTime)
	end := resolver.TimeToMinutes(input.EndTime)
	if start == end {
		return nil, fmt.Errorf("allocation window has zero length: %s-%s", input.StartTime, input.EndTime)
	}

	if err := ensureOperatorExists(ctx, database, input.OperatorID); err != nil {
		return nil, err
	}

	existing, err := database.GetAllocationsByDates(ctx, []string{input.Date})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing allocations: %w", err)
	}
	for _, other := range existing {
		if other.OperatorID != input.OperatorID {
			continue
		}
		if windowsOverlap(start, end, resolver.TimeToMinutes(other.StartTime), resolver.TimeToMinutes(other.EndTime)) {
			return nil, fmt.Errorf("allocation overlaps existing allocation %s (%s-%s)", other.ID, other.StartTime, other.EndTime)
		}
	}

	allocation := &db.ManualAllocation{
		ID:          uuid.New().String(),
		OperatorID:  input.OperatorID,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Focus:       string(focus),
		Leader:      input.Leader,
		Observation: input.Observation,
	}

	if err := database.InsertAllocation(ctx, allocation); err != nil {
		return nil, fmt.Errorf("failed to insert allocation: %w", err)
	}

	logger.Info("Manual allocation created",
		zap.String("allocation_id", allocation.ID),
		zap.String("operator_id", allocation.OperatorID),
		zap.String("date", allocation.Date),
		zap.String("window", allocation.StartTime+"-"+allocation.EndTime))

	return allocation, nil
}

// AddAllocationPeriod validates and persists a focus sub-period. The
// sub-period must sit entirely inside the owning allocation's window and
// must not overlap a sibling sub-period.
func AddAllocationPeriod(ctx context.Context, database db.Database, logger *zap.Logger, input NewAllocationPeriod) (*db.AllocationPeriod, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("allocation period validation failed: %w", err)
	}

	focus, ok := canonicalFocus(input.Focus)
	if !ok {
		return nil, fmt.Errorf("unknown focus %q", input.Focus)
	}

	allocation, err := database.GetAllocationByID(ctx, input.AllocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocation: %w", err)
	}
	if allocation == nil {
		return nil, fmt.Errorf("allocation %s not found", input.AllocationID)
	}

	shiftStart := resolver.TimeToMinutes(allocation.StartTime)
	shiftEnd := resolver.TimeToMinutes(allocation.EndTime)
	shiftEndLinear := shiftEnd
	if resolver.IsOvernight(shiftStart, shiftEnd) {
		shiftEndLinear += 24 * 60
	}

	start, end := resolver.NormalizeToShift(
		resolver.TimeToMinutes(input.StartTime),
		resolver.TimeToMinutes(input.EndTime),
		shiftStart, shiftEnd,
	)
	if start == end {
		return nil, fmt.Errorf("sub-period has zero length: %s-%s", input.StartTime, input.EndTime)
	}
	if start < shiftStart || end > shiftEndLinear {
		return nil, fmt.Errorf("sub-period %s-%s falls outside allocation window %s-%s",
			input.StartTime, input.EndTime, allocation.StartTime, allocation.EndTime)
	}

	siblings, err := database.GetAllocationPeriods(ctx, input.AllocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing sub-periods: %w", err)
	}
	for _, sibling := range siblings {
		sibStart, sibEnd := resolver.NormalizeToShift(
			resolver.TimeToMinutes(sibling.StartTime),
			resolver.TimeToMinutes(sibling.EndTime),
			shiftStart, shiftEnd,
		)
		if start < sibEnd && sibStart < end {
			return nil, fmt.Errorf("sub-period overlaps existing sub-period %s (%s-%s)",
				sibling.ID, sibling.StartTime, sibling.EndTime)
		}
	}

	period := &db.AllocationPeriod{
		ID:           uuid.New().String(),
		AllocationID: input.AllocationID,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Focus:        string(focus),
		Observation:  input.Observation,
	}

	if err := database.InsertAllocationPeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to insert allocation period: %w", err)
	}

	logger.Info("Allocation sub-period created",
		zap.String("period_id", period.ID),
		zap.String("allocation_id", period.AllocationID),
		zap.String("window", period.StartTime+"-"+period.EndTime))

	return period, nil
}

// windowsOverlap reports whether two same-date windows intersect, unrolling
// overnight wraparound onto a linear two-day axis
func windowsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	if resolver.IsOvernight(aStart, aEnd) {
		aEnd += 24 * 60
	}
	if resolver.IsOvernight(bStart, bEnd) {
		bEnd += 24 * 60
	}
	return aStart < bEnd && bStart < aEnd
}

// findOperator returns one operator's record, or (nil, nil) when no record
// exists
func findOperator(ctx context.Context, database db.OperatorStore, operatorID string) (*db.Operator, error) {
	operators, err := database.GetOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operators: %w", err)
	}
	for _, op := range operators {
		if op.ID == operatorID {
			found := op
			return &found, nil
		}
	}
	return nil, nil
}

func ensureOperatorExists(ctx context.Context, database db.OperatorStore, operatorID string) error {
	op, err := findOperator(ctx, database, operatorID)
	if err != nil {
		return err
	}
	if op == nil {
		return fmt.Errorf("operator %s not found", operatorID)
	}
	return nil
}

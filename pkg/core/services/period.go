package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/resolver"
	"github.com/central-patrimonium/roster/pkg/db"
)

// NewFocusPeriod is the validated input for appending a standing focus
// period to an operator's stored order
type NewFocusPeriod struct {
	OperatorID  string `validate:"required,uuid"`
	StartTime   string `validate:"required,datetime=15:04"`
	EndTime     string `validate:"required,datetime=15:04"`
	Focus       string `validate:"required"`
	Observation string
}

// AddFocusPeriod validates and persists a standing focus period. The period
// must sit entirely inside the operator's primary shift window and must not
// overlap a sibling period.
func AddFocusPeriod(ctx context.Context, database db.Database, logger *zap.Logger, input NewFocusPeriod) (*db.FocusPeriod, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("focus period validation failed: %w", err)
	}

	focus, ok := canonicalFocus(input.Focus)
	if !ok {
		return nil, fmt.Errorf("unknown focus %q", input.Focus)
	}

	operator, err := findOperator(ctx, database, input.OperatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, fmt.Errorf("operator %s not found", input.OperatorID)
	}

	shiftStart := resolver.TimeToMinutes(operator.StartTime)
	shiftEnd := resolver.TimeToMinutes(operator.EndTime)
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
		return nil, fmt.Errorf("focus period has zero length: %s-%s", input.StartTime, input.EndTime)
	}
	if start < shiftStart || end > shiftEndLinear {
		return nil, fmt.Errorf("focus period %s-%s falls outside shift window %s-%s",
			input.StartTime, input.EndTime, operator.StartTime, operator.EndTime)
	}

	siblings, err := database.GetFocusPeriodsByOperator(ctx, input.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing focus periods: %w", err)
	}
	for _, sibling := range siblings {
		sibStart, sibEnd := resolver.NormalizeToShift(
			resolver.TimeToMinutes(sibling.StartTime),
			resolver.TimeToMinutes(sibling.EndTime),
			shiftStart, shiftEnd,
		)
		if start < sibEnd && sibStart < end {
			return nil, fmt.Errorf("focus period overlaps existing period %s (%s-%s)",
				sibling.ID, sibling.StartTime, sibling.EndTime)
		}
	}

	period := &db.FocusPeriod{
		ID:          uuid.New().String(),
		OperatorID:  input.OperatorID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Focus:       string(focus),
		Observation: input.Observation,
	}

	if err := database.InsertFocusPeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to insert focus period: %w", err)
	}

	logger.Info("Focus period created",
		zap.String("period_id", period.ID),
		zap.String("operator_id", period.OperatorID),
		zap.String("window", period.StartTime+"-"+period.EndTime))

	return period, nil
}

package resolver

import (
	"time"

	"github.com/central-patrimonium/roster/pkg/core/model"
)

// DefaultAutomaticFocus is the focus assigned to an operator who is on
// shift automatically but outside all of their dedicated focus periods.
// The operator's configured default focus is a roster-listing default only;
// the live board always falls back to the support column.
const DefaultAutomaticFocus = model.FocusApoio

// Entry is one resolved line on the on-shift board
type Entry struct {
	OperatorID  string
	Name        string
	Focus       model.Focus
	Observation string
	StartTime   string
	EndTime     string
	Manual      bool // resolved from a manual allocation rather than the template
	Color       string
}

const dateLayout = "2006-01-02"

// ResolveOperator resolves one operator at one instant. It returns the
// board entry and whether the operator is on shift at all; off-shift
// operators contribute nothing to the board.
//
// Manual allocations strictly override the automatic schedule: when one is
// active the 12x36/6x18 template is not consulted for this tick.
func ResolveOperator(
	op model.Operator,
	periods []model.FocusPeriod,
	allocations []model.ManualAllocation,
	now time.Time,
	cfg model.RotationConfig,
) (Entry, bool) {
	if !op.Active {
		return Entry{}, false
	}

	nowMinutes := now.Hour()*60 + now.Minute()

	if alloc, ok := activeAllocation(op.ID, allocations, now, nowMinutes); ok {
		return resolveManualEntry(op, alloc, nowMinutes), true
	}

	window := SelectDailyWindow(op, now, cfg)
	if !window.OnShift {
		return Entry{}, false
	}

	entry := Entry{
		OperatorID: op.ID,
		Name:       op.Name,
		Focus:      DefaultAutomaticFocus,
		StartTime:  window.Start,
		EndTime:    window.End,
		Color:      op.Color,
	}

	// first period containing the instant wins, in stored order
	for _, period := range periods {
		if period.OperatorID != op.ID {
			continue
		}
		if WithinWindow(nowMinutes, TimeToMinutes(period.StartTime), TimeToMinutes(period.EndTime)) {
			entry.Focus = period.Focus
			entry.Observation = period.Observation
			break
		}
	}

	return entry, true
}

// activeAllocation finds the manual allocation covering the instant, if
// any. Today's allocations are checked first and short-circuit; an
// allocation dated yesterday applies only when its window runs overnight
// and the instant falls in the post-midnight tail.
func activeAllocation(operatorID string, allocations []model.ManualAllocation, now time.Time, nowMinutes int) (model.ManualAllocation, bool) {
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	for _, alloc := range allocations {
		if alloc.OperatorID != operatorID || alloc.Date != today {
			continue
		}
		if WithinWindow(nowMinutes, TimeToMinutes(alloc.StartTime), TimeToMinutes(alloc.EndTime)) {
			return alloc, true
		}
	}

	for _, alloc := range allocations {
		if alloc.OperatorID != operatorID || alloc.Date != yesterday {
			continue
		}
		start := TimeToMinutes(alloc.StartTime)
		end := TimeToMinutes(alloc.EndTime)
		if IsOvernight(start, end) && nowMinutes < end {
			return alloc, true
		}
	}

	return model.ManualAllocation{}, false
}

// resolveManualEntry builds the board entry for an active manual
// allocation. The display window is always the allocation's own start/end;
// sub-periods only refine focus and observation.
func resolveManualEntry(op model.Operator, alloc model.ManualAllocation, nowMinutes int) Entry {
	entry := Entry{
		OperatorID:  op.ID,
		Name:        op.Name,
		Focus:       alloc.Focus,
		Observation: alloc.Observation,
		StartTime:   alloc.StartTime,
		EndTime:     alloc.EndTime,
		Manual:      true,
		Color:       op.Color,
	}

	for _, period := range alloc.Periods {
		if WithinWindow(nowMinutes, TimeToMinutes(period.StartTime), TimeToMinutes(period.EndTime)) {
			entry.Focus = period.Focus
			entry.Observation = period.Observation
			break
		}
	}

	return entry
}

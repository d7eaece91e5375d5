package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/model"
	"github.com/central-patrimonium/roster/pkg/core/resolver"
	"github.com/central-patrimonium/roster/pkg/db"
)

// WeekendOperator is one row of the weekend preview
type WeekendOperator struct {
	OperatorID string
	Name       string
	StartTime  string
	EndTime    string
	Focus      model.Focus
	Manual     bool
	Color      string
}

// WeekendDay lists everyone scheduled to work one weekend date
type WeekendDay struct {
	Date      time.Time
	Operators []WeekendOperator
}

// WeekendView is the upcoming Saturday and Sunday coverage. When called on
// a weekend day, that day is included.
type WeekendView struct {
	Saturday WeekendDay
	Sunday   WeekendDay
}

// GetWeekendSchedule previews who covers the upcoming weekend: everyone the
// automatic schedule puts on duty that date, with manual allocations
// replacing or extending the automatic rows
func GetWeekendSchedule(ctx context.Context, database db.Database, logger *zap.Logger, now time.Time) (*WeekendView, error) {
	saturday, sunday, err := upcomingWeekend(now)
	if err != nil {
		return nil, err
	}

	logger.Debug("Building weekend preview",
		zap.String("saturday", saturday.Format(dateLayout)),
		zap.String("sunday", sunday.Format(dateLayout)))

	operatorRecs, err := database.GetActiveOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operators: %w", err)
	}

	cfgRec, err := database.GetRotationConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation config: %w", err)
	}
	cfg := rotationConfigFromRecord(cfgRec)

	operators := make([]model.Operator, 0, len(operatorRecs))
	for _, rec := range operatorRecs {
		operators = append(operators, operatorFromRecord(rec))
	}

	allocRecs, err := database.GetAllocationsByDates(ctx, []string{
		saturday.Format(dateLayout),
		sunday.Format(dateLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual allocations: %w", err)
	}

	view := &WeekendView{
		Saturday: buildWeekendDay(saturday, operators, allocRecs, cfg),
		Sunday:   buildWeekendDay(sunday, operators, allocRecs, cfg),
	}

	logger.Info("Weekend preview built",
		zap.Int("saturday_operators", len(view.Saturday.Operators)),
		zap.Int("sunday_operators", len(view.Sunday.Operators)))

	return view, nil
}

// upcomingWeekend finds the next Saturday and Sunday on or after the given
// instant's date
func upcomingWeekend(now time.Time) (time.Time, time.Time, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		Dtstart:   startOfDay,
		Count:     2,
	})
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to build weekend rule: %w", err)
	}

	var saturday, sunday time.Time
	for _, day := range r.All() {
		switch day.Weekday() {
		case time.Saturday:
			saturday = day
		case time.Sunday:
			sunday = day
		}
	}

	if saturday.IsZero() || sunday.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("weekend rule produced no saturday/sunday from %s", startOfDay.Format(dateLayout))
	}

	return saturday, sunday, nil
}

// buildWeekendDay assembles one day's rows: the automatic schedule first,
// then manual allocations dated that day, which replace an operator's
// automatic row when present
func buildWeekendDay(date time.Time, operators []model.Operator, allocations []db.ManualAllocation, cfg model.RotationConfig) WeekendDay {
	day := WeekendDay{Date: date}
	dateStr := date.Format(dateLayout)

	manualByOperator := make(map[string][]db.ManualAllocation)
	for _, alloc := range allocations {
		if alloc.Date == dateStr {
			manualByOperator[alloc.OperatorID] = append(manualByOperator[alloc.OperatorID], alloc)
		}
	}

	for _, op := range operators {
		// one row per allocation: split shifts keep every window
		if allocs, ok := manualByOperator[op.ID]; ok {
			for _, alloc := range allocs {
				day.Operators = append(day.Operators, WeekendOperator{
					OperatorID: op.ID,
					Name:       op.Name,
					StartTime:  alloc.StartTime,
					EndTime:    alloc.EndTime,
					Focus:      model.Focus(alloc.Focus),
					Manual:     true,
					Color:      op.Color,
				})
			}
			continue
		}

		if !resolver.WorksOnDate(op, date, cfg) {
			continue
		}
		start, end, ok := resolver.WindowForDate(op, date)
		if !ok {
			continue
		}

		day.Operators = append(day.Operators, WeekendOperator{
			OperatorID: op.ID,
			Name:       op.Name,
			StartTime:  start,
			EndTime:    end,
			Focus:      op.DefaultFocus,
			Color:      op.Color,
		})
	}

	return day
}

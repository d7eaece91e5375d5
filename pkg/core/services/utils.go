package services

import (
	"strings"

	"github.com/central-patrimonium/roster/pkg/core/model"
	"github.com/central-patrimonium/roster/pkg/db"
)

const dateLayout = "2006-01-02"

// operatorFromRecord converts a database operator record to the domain model
func operatorFromRecord(rec db.Operator) model.Operator {
	return model.Operator{
		ID:            rec.ID,
		Name:          rec.Name,
		Active:        rec.Active,
		ShiftKind:     model.ShiftKind(rec.ShiftKind),
		RotationGroup: model.RotationGroup(rec.RotationGroup),
		StartTime:     rec.StartTime,
		EndTime:       rec.EndTime,
		SaturdayStart: rec.SaturdayStart,
		SaturdayEnd:   rec.SaturdayEnd,
		SundayStart:   rec.SundayStart,
		SundayEnd:     rec.SundayEnd,
		Weekdays:      splitWeekdays(rec.Weekdays),
		DefaultFocus:  model.Focus(rec.DefaultFocus),
		Color:         rec.Color,
	}
}

// splitWeekdays parses the comma-separated weekday column, dropping empty
// segments and surrounding whitespace
func splitWeekdays(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	days := make([]string, 0, len(parts))
	for _, part := range parts {
		day := strings.TrimSpace(part)
		if day != "" {
			days = append(days, day)
		}
	}
	return days
}

func focusPeriodFromRecord(rec db.FocusPeriod) model.FocusPeriod {
	return model.FocusPeriod{
		ID:          rec.ID,
		OperatorID:  rec.OperatorID,
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		Focus:       model.Focus(rec.Focus),
		Observation: rec.Observation,
	}
}

// allocationFromRecord converts a manual allocation and its sub-periods,
// already sorted by stored position, to the domain model
func allocationFromRecord(rec db.ManualAllocation, periods []db.AllocationPeriod) model.ManualAllocation {
	alloc := model.ManualAllocation{
		ID:          rec.ID,
		OperatorID:  rec.OperatorID,
		Date:        rec.Date,
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		Focus:       model.Focus(rec.Focus),
		Leader:      rec.Leader,
		Observation: rec.Observation,
	}

	for _, p := range periods {
		alloc.Periods = append(alloc.Periods, model.AllocationPeriod{
			ID:           p.ID,
			AllocationID: p.AllocationID,
			StartTime:    p.StartTime,
			EndTime:      p.EndTime,
			Focus:        model.Focus(p.Focus),
			Observation:  p.Observation,
		})
	}

	return alloc
}

// rotationConfigFromRecord converts the singleton config record. A nil
// record yields the zero value, which the resolver treats as the defaults.
func rotationConfigFromRecord(rec *db.RotationConfig) model.RotationConfig {
	if rec == nil {
		return model.RotationConfig{}
	}
	return model.RotationConfig{
		ParityRule:      model.ParityRule(rec.ParityRule),
		DayLeaderA:      rec.DayLeaderA,
		DayLeaderB:      rec.DayLeaderB,
		NightLeader:     rec.NightLeader,
		NightLeaderA:    rec.NightLeaderA,
		NightLeaderB:    rec.NightLeaderB,
		FacilityManager: rec.FacilityManager,
	}
}

// canonicalFocus matches a user-supplied focus value against the known
// vocabulary, ignoring case and surrounding whitespace, and returns the
// canonical form
func canonicalFocus(s string) (model.Focus, bool) {
	trimmed := strings.TrimSpace(s)
	for _, focus := range []model.Focus{model.FocusIRIS, model.FocusSituator, model.FocusApoio, model.FocusAmbos} {
		if strings.EqualFold(trimmed, string(focus)) {
			return focus, true
		}
	}
	return "", false
}

// canonicalStatus matches a user-supplied live status against the known
// vocabulary, ignoring case and surrounding whitespace
func canonicalStatus(s string) (model.OperatorStatus, bool) {
	trimmed := strings.TrimSpace(s)
	for _, status := range []model.OperatorStatus{model.StatusOperating, model.StatusPaused, model.StatusOffShift} {
		if strings.EqualFold(trimmed, string(status)) {
			return status, true
		}
	}
	return "", false
}

package resolver

import (
	"time"

	"github.com/central-patrimonium/roster/pkg/core/model"
)

// DailyWindow is the outcome of window selection for one operator at one
// instant: whether they are on shift automatically, and the display window
// that applies for the day.
type DailyWindow struct {
	OnShift bool
	Start   string
	End     string
}

var weekdayAbbrev = map[time.Weekday]string{
	time.Sunday:    model.WeekdaySun,
	time.Monday:    model.WeekdayMon,
	time.Tuesday:   model.WeekdayTue,
	time.Wednesday: model.WeekdayWed,
	time.Thursday:  model.WeekdayThu,
	time.Friday:    model.WeekdayFri,
	time.Saturday:  model.WeekdaySat,
}

// SelectDailyWindow decides whether the operator's automatic schedule puts
// them on shift right now and which start/end window applies.
func SelectDailyWindow(op model.Operator, now time.Time, cfg model.RotationConfig) DailyWindow {
	if op.ShiftKind.IsRotating() {
		return selectRotatingWindow(op, now, cfg)
	}
	return selectFixedWindow(op, now)
}

// selectRotatingWindow handles the 12x36 kinds: the primary window gated by
// rotation parity. When the current instant sits in the post-midnight tail
// of an overnight shift, parity is judged against yesterday, the day the
// shift started on.
func selectRotatingWindow(op model.Operator, now time.Time, cfg model.RotationConfig) DailyWindow {
	if op.RotationGroup != model.GroupA && op.RotationGroup != model.GroupB {
		return DailyWindow{}
	}

	start := TimeToMinutes(op.StartTime)
	end := TimeToMinutes(op.EndTime)
	nowMinutes := now.Hour()*60 + now.Minute()

	if !WithinWindow(nowMinutes, start, end) {
		return DailyWindow{}
	}

	referenceDate := now
	if IsOvernight(start, end) && nowMinutes < end {
		referenceDate = now.AddDate(0, 0, -1)
	}

	if !GroupOnDuty(op.RotationGroup, referenceDate, cfg) {
		return DailyWindow{}
	}

	return DailyWindow{OnShift: true, Start: op.StartTime, End: op.EndTime}
}

// selectFixedWindow handles the 6x18 kind: Saturday window, then Sunday
// window, then the weekday window when today's abbreviation is in the
// operator's weekday set.
func selectFixedWindow(op model.Operator, now time.Time) DailyWindow {
	startTime, endTime, ok := fixedWindowForDate(op, now)
	if !ok {
		return DailyWindow{}
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if !WithinWindow(nowMinutes, TimeToMinutes(startTime), TimeToMinutes(endTime)) {
		return DailyWindow{}
	}

	return DailyWindow{OnShift: true, Start: startTime, End: endTime}
}

// fixedWindowForDate picks the 6x18 window applicable on the given date,
// independent of the current time of day.
func fixedWindowForDate(op model.Operator, date time.Time) (string, string, bool) {
	switch date.Weekday() {
	case time.Saturday:
		if op.SaturdayStart != "" && op.SaturdayEnd != "" {
			return op.SaturdayStart, op.SaturdayEnd, true
		}
	case time.Sunday:
		if op.SundayStart != "" && op.SundayEnd != "" {
			return op.SundayStart, op.SundayEnd, true
		}
	}

	abbrev := weekdayAbbrev[date.Weekday()]
	for _, day := range op.Weekdays {
		if day == abbrev {
			return op.StartTime, op.EndTime, true
		}
	}

	return "", "", false
}

// WindowForDate returns the display window the operator's automatic
// schedule would use on the given calendar date, ignoring rotation parity
// and the time of day. ok is false when no window applies that date.
func WindowForDate(op model.Operator, date time.Time) (start, end string, ok bool) {
	if op.ShiftKind.IsRotating() {
		if op.StartTime == "" || op.EndTime == "" {
			return "", "", false
		}
		return op.StartTime, op.EndTime, true
	}
	return fixedWindowForDate(op, date)
}

// WorksOnDate reports whether the operator's automatic schedule covers any
// part of the given calendar date, ignoring the time of day. Used by the
// weekend preview, which lists a whole day at a time.
func WorksOnDate(op model.Operator, date time.Time, cfg model.RotationConfig) bool {
	if op.ShiftKind.IsRotating() {
		if op.RotationGroup != model.GroupA && op.RotationGroup != model.GroupB {
			return false
		}
		return GroupOnDuty(op.RotationGroup, date, cfg)
	}

	_, _, ok := fixedWindowForDate(op, date)
	return ok
}

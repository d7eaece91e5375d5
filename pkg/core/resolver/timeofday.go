package resolver

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeToMinutes converts a wall-clock "HH:MM" string (a trailing ":SS" is
// tolerated and ignored) to a minute-of-day value in [0,1439]. Empty or
// malformed input yields 0 rather than an error: time fields on periods and
// allocations are optional and display data is best-effort.
func TimeToMinutes(t string) int {
	if t == "" {
		return 0
	}

	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0
	}

	return hours*60 + minutes
}

// IsOvernight reports whether a window wraps past midnight. A window with
// end == start has zero duration and is not treated as overnight; callers
// that care about duration must reject it.
func IsOvernight(start, end int) bool {
	return start > end
}

// WithinWindow reports whether the current minute falls inside the
// [start,end) window, handling overnight wraparound. Every shift and
// sub-period containment check in the system goes through this function.
func WithinWindow(current, start, end int) bool {
	if IsOvernight(start, end) {
		return current >= start || current < end
	}
	return current >= start && current < end
}

// NormalizeToShift shifts a sub-period's minute values forward by one day
// where needed so that it can be compared linearly against a shift that may
// itself wrap past midnight. Used for timeline layout and write-side bounds
// checks; runtime containment uses WithinWindow directly.
func NormalizeToShift(periodStart, periodEnd, shiftStart, shiftEnd int) (int, int) {
	start := periodStart
	end := periodEnd

	if end < start {
		end += minutesPerDay
	}
	if IsOvernight(shiftStart, shiftEnd) && start < shiftStart {
		start += minutesPerDay
		end += minutesPerDay
	}

	return start, end
}

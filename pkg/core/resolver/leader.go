package resolver

import (
	"time"

	"github.com/central-patrimonium/roster/pkg/core/model"
)

// Placeholder leader names used when the rotation config leaves a name
// unset, so the panel never shows an empty leader line.
const (
	PlaceholderDayLeaderA  = "Líder A"
	PlaceholderDayLeaderB  = "Líder B"
	PlaceholderNightLeader = "Líder Noturno"
)

const (
	dayShiftStartHour = 7
	dayShiftEndHour   = 19
)

// ResolveLeader returns the acting shift-leader name for the instant. The
// day turn runs [07:00,19:00); everything else is the night turn. Before
// 07:00 the night shift that is ending started yesterday, so parity is
// judged against yesterday's date.
func ResolveLeader(now time.Time, cfg model.RotationConfig) string {
	hour := now.Hour()
	isNight := hour < dayShiftStartHour || hour >= dayShiftEndHour

	referenceDate := now
	if hour < dayShiftStartHour {
		referenceDate = now.AddDate(0, 0, -1)
	}

	groupAOnDuty := GroupOnDuty(model.GroupA, referenceDate, cfg)

	if isNight {
		name := cfg.NightLeaderB
		if groupAOnDuty {
			name = cfg.NightLeaderA
		}
		if name == "" {
			name = cfg.NightLeader
		}
		if name == "" {
			name = PlaceholderNightLeader
		}
		return name
	}

	if groupAOnDuty {
		if cfg.DayLeaderA == "" {
			return PlaceholderDayLeaderA
		}
		return cfg.DayLeaderA
	}
	if cfg.DayLeaderB == "" {
		return PlaceholderDayLeaderB
	}
	return cfg.DayLeaderB
}

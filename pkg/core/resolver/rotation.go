package resolver

import (
	"strings"
	"time"

	"github.com/central-patrimonium/roster/pkg/core/model"
)

// GroupOnDuty reports whether the given rotation group works on the given
// calendar date. Group A works on the parity the config names; group B takes
// the complementary parity, so exactly one group is on duty per date.
//
// For overnight shifts the caller chooses the reference date: the tail of a
// shift that started yesterday is judged by yesterday's parity.
func GroupOnDuty(group model.RotationGroup, date time.Time, cfg model.RotationConfig) bool {
	isEven := date.Day()%2 == 0
	groupAWorksEven := parityFavorsEven(cfg.ParityRule)

	switch group {
	case model.GroupA:
		return isEven == groupAWorksEven
	case model.GroupB:
		return isEven != groupAWorksEven
	default:
		// 12x36 operator without an assigned group is never scheduled
		return false
	}
}

// parityFavorsEven interprets the stored parity rule tolerantly: the compare
// is case and whitespace insensitive, and a missing rule (no config record
// loaded yet) defaults to even days.
func parityFavorsEven(rule model.ParityRule) bool {
	normalized := strings.ToLower(strings.TrimSpace(string(rule)))
	return normalized == string(model.ParityEven) || normalized == ""
}

// Package resolver implements the shift-resolution engine: given an
// instant and an immutable roster snapshot it decides who is on duty, what
// each operator is focused on, and who the acting shift leader is.
//
// Resolution is a pure function of its inputs. It performs no I/O, holds no
// state between calls, and never fails: malformed data degrades to defaults
// or to exclusion from the board, per the tolerant contract of the panel.
package resolver

import (
	"strings"
	"time"

	"github.com/central-patrimonium/roster/pkg/core/model"
)

// Snapshot is the immutable input to one resolution pass. The zero value of
// Config behaves as the documented defaults (even-day parity, placeholder
// leader names), so a missing config record is safe.
type Snapshot struct {
	Operators   []model.Operator
	Periods     []model.FocusPeriod      // standing focus periods, stored order
	Allocations []model.ManualAllocation // manual allocations dated today or yesterday
	Config      model.RotationConfig
}

// Board is the resolved on-shift state for one instant
type Board struct {
	Entries []Entry
	Leader  string
}

// Resolve runs one full resolution pass over the snapshot. Recomputation is
// idempotent; the panel re-invokes it on every tick.
func Resolve(now time.Time, snap Snapshot) Board {
	board := Board{
		Entries: make([]Entry, 0, len(snap.Operators)),
		Leader:  ResolveLeader(now, snap.Config),
	}

	for _, op := range snap.Operators {
		entry, onShift := ResolveOperator(op, snap.Periods, snap.Allocations, now, snap.Config)
		if onShift {
			board.Entries = append(board.Entries, entry)
		}
	}

	return board
}

// EntriesFor returns the board column for one focus. An entry resolved to
// "Ambos" counts toward both system columns but never toward the support
// column. Matching ignores case and surrounding whitespace.
func (b Board) EntriesFor(focus model.Focus) []Entry {
	column := make([]Entry, 0, len(b.Entries))
	for _, entry := range b.Entries {
		if focusMatches(entry.Focus, focus) {
			column = append(column, entry)
		}
	}
	return column
}

func focusMatches(resolved, column model.Focus) bool {
	if focusEqual(resolved, column) {
		return true
	}
	// "Ambos" joins the two system columns, never the support column
	if focusEqual(resolved, model.FocusAmbos) {
		return focusEqual(column, model.FocusIRIS) || focusEqual(column, model.FocusSituator)
	}
	return false
}

func focusEqual(a, b model.Focus) bool {
	return strings.EqualFold(strings.TrimSpace(string(a)), strings.TrimSpace(string(b)))
}

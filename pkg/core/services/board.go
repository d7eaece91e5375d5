package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/model"
	"github.com/central-patrimonium/roster/pkg/core/resolver"
	"github.com/central-patrimonium/roster/pkg/db"
)

// BoardView is the fully resolved live panel for one instant: one column
// per monitored system plus the support column, the acting leader, and the
// live status of every on-shift operator
type BoardView struct {
	GeneratedAt time.Time
	Leader      string
	IRIS        []resolver.Entry
	Situator    []resolver.Entry
	Apoio       []resolver.Entry
	Statuses    map[string]string // operator ID -> live status
}

// GetBoard loads the roster snapshot, runs one resolution pass at the given
// instant, and assembles the panel columns
func GetBoard(ctx context.Context, database db.Database, logger *zap.Logger, now time.Time) (*BoardView, error) {
	logger.Debug("Resolving board", zap.Time("now", now))

	snap, err := loadSnapshot(ctx, database, now)
	if err != nil {
		return nil, err
	}

	board := resolver.Resolve(now, *snap)

	statuses, err := database.GetStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operator statuses: %w", err)
	}

	stored := make(map[string]string, len(statuses))
	for _, s := range statuses {
		stored[s.OperatorID] = s.Status
	}

	// on-shift operators default to operating unless someone set a status
	view := &BoardView{
		GeneratedAt: now,
		Leader:      board.Leader,
		IRIS:        board.EntriesFor(model.FocusIRIS),
		Situator:    board.EntriesFor(model.FocusSituator),
		Apoio:       board.EntriesFor(model.FocusApoio),
		Statuses:    make(map[string]string, len(board.Entries)),
	}
	for _, entry := range board.Entries {
		if status, ok := stored[entry.OperatorID]; ok {
			view.Statuses[entry.OperatorID] = status
		} else {
			view.Statuses[entry.OperatorID] = string(model.StatusOperating)
		}
	}

	logger.Info("Board resolved",
		zap.Int("on_shift", len(board.Entries)),
		zap.String("leader", board.Leader))

	return view, nil
}

// loadSnapshot fetches everything one resolution pass needs: active
// operators, standing focus periods, manual allocations dated today or
// yesterday with their sub-periods, and the rotation config
func loadSnapshot(ctx context.Context, database db.Database, now time.Time) (*resolver.Snapshot, error) {
	operatorRecs, err := database.GetActiveOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operators: %w", err)
	}

	periodRecs, err := database.GetFocusPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch focus periods: %w", err)
	}

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	allocRecs, err := database.GetAllocationsByDates(ctx, []string{today, yesterday})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual allocations: %w", err)
	}

	cfgRec, err := database.GetRotationConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation config: %w", err)
	}

	snap := resolver.Snapshot{
		Operators: make([]model.Operator, 0, len(operatorRecs)),
		Periods:   make([]model.FocusPeriod, 0, len(periodRecs)),
		Config:    rotationConfigFromRecord(cfgRec),
	}

	for _, rec := range operatorRecs {
		snap.Operators = append(snap.Operators, operatorFromRecord(rec))
	}
	for _, rec := range periodRecs {
		snap.Periods = append(snap.Periods, focusPeriodFromRecord(rec))
	}
	for _, rec := range allocRecs {
		subPeriods, err := database.GetAllocationPeriods(ctx, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch allocation periods: %w", err)
		}
		snap.Allocations = append(snap.Allocations, allocationFromRecord(rec, subPeriods))
	}

	return &snap, nil
}

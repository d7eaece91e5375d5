package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/db"
)

// SetStatus records a manually-set live status for one operator. The status
// is display state only; it never changes who the resolver puts on shift.
func SetStatus(ctx context.Context, database db.Database, logger *zap.Logger, operatorID, status string, now time.Time) error {
	canonical, ok := canonicalStatus(status)
	if !ok {
		return fmt.Errorf("unknown status %q", status)
	}

	if err := ensureOperatorExists(ctx, database, operatorID); err != nil {
		return err
	}

	record := &db.OperatorStatus{
		OperatorID: operatorID,
		Status:     string(canonical),
		UpdatedAt:  now.UTC().Format(time.RFC3339),
	}
	if err := database.UpsertStatus(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert status: %w", err)
	}

	logger.Info("Operator status updated",
		zap.String("operator_id", operatorID),
		zap.String("status", record.Status))

	return nil
}

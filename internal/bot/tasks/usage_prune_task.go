package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const pruneTimeout = time.Minute

// newUsagePruneTask creates the task that deletes usage records older than
// the configured retention period.
func newUsagePruneTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "usage_prune")

	return func(ctx context.Context) error {
		retention := time.Duration(deps.Config.Database.RetentionDays) * 24 * time.Hour
		cutoff := time.Now().Add(-retention)

		timeoutCtx, cancel := context.WithTimeout(ctx, pruneTimeout)
		defer cancel()

		removed, err := deps.Store.PruneRequests(timeoutCtx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Failed to prune usage records", "error", err, "cutoff", cutoff)
			return fmt.Errorf("usage prune failed: %w", err)
		}

		log.InfoContext(ctx, "Pruned usage records",
			"removed", removed,
			"older_than", humanize.Time(cutoff))
		return nil
	}
}

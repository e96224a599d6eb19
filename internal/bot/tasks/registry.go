package tasks

import (
	"context"

	"github.com/edgard/aibridge/internal/config"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns a map of all scheduled tasks keyed
// by the names used in SchedulerConfig.Jobs.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		config.TaskSQLMaintenance: newSQLMaintenanceTask(deps),
		config.TaskUsagePrune:     newUsagePruneTask(deps),
		config.TaskUsageReport:    newUsageReportTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}

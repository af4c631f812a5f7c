package expiry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/cadence"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/huddle-api/background"
	"github.com/bitmark-inc/huddle-api/consts"
)

var activityOptions = workflow.ActivityOptions{
	ScheduleToStartTimeout: time.Minute,
	StartToCloseTimeout:    2 * time.Minute,
	RetryPolicy: &cadence.RetryPolicy{
		InitialInterval:    10 * time.Second,
		BackoffCoefficient: 2,
		MaximumInterval:    2 * time.Minute,
		ExpirationInterval: 15 * time.Minute,
		MaximumAttempts:    5,
	},
}

// DelayedTaskWorkflow sleeps for delay and then runs task once. Its
// workflow id is the job id, which keeps one job per request.
func (w *ExpiryWorker) DelayedTaskWorkflow(ctx workflow.Context, delay time.Duration, task string, args []string) error {
	logger := workflow.GetLogger(ctx)

	if err := workflow.Sleep(ctx, delay); err != nil {
		return err
	}

	logger.Info("Delayed task is due", zap.String("task", task), zap.Strings("args", args))
	return w.runTask(ctx, task, args)
}

// RecurringTaskWorkflow runs task once per cron tick
func (w *ExpiryWorker) RecurringTaskWorkflow(ctx workflow.Context, task string) error {
	return w.runTask(ctx, task, nil)
}

func (w *ExpiryWorker) runTask(ctx workflow.Context, task string, args []string) error {
	ctx = workflow.WithActivityOptions(ctx, activityOptions)
	logger := workflow.GetLogger(ctx)

	var err error
	switch task {
	case consts.TaskExpireRequest:
		if len(args) != 1 {
			return background.ErrMissingArgument
		}
		err = workflow.ExecuteActivity(ctx, w.ExpireRequestActivity, args[0]).Get(ctx, nil)
	case consts.TaskSweepStaleRequests:
		var swept int
		err = workflow.ExecuteActivity(ctx, w.SweepStaleRequestsActivity).Get(ctx, &swept)
	case consts.TaskSyncMemberDirectory:
		var count int64
		err = workflow.ExecuteActivity(ctx, w.SyncMemberDirectoryActivity).Get(ctx, &count)
	default:
		return fmt.Errorf("%w: %s", background.ErrUnknownTask, task)
	}

	if err != nil {
		logger.Error("Task failed", zap.String("task", task), zap.Error(err))
		sentry.CaptureException(err)
	}
	return err
}

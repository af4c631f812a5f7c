package expiry

import (
	"github.com/uber-go/tally"
	"go.uber.org/cadence/.gen/go/cadence/workflowserviceclient"
	"go.uber.org/cadence/activity"
	"go.uber.org/cadence/worker"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/huddle-api/background"
	"github.com/bitmark-inc/huddle-api/external/cadence"
)

const TaskListName = "huddle-expiry-tasks"

const (
	DelayedTaskWorkflowName   = "DelayedTaskWorkflow"
	RecurringTaskWorkflowName = "RecurringTaskWorkflow"
)

type ExpiryWorker struct {
	background.Background
	domain string
}

func NewExpiryWorker(domain string, b background.Background) *ExpiryWorker {
	return &ExpiryWorker{
		Background: b,
		domain:     domain,
	}
}

func (w *ExpiryWorker) Register() {
	workflow.RegisterWithOptions(w.DelayedTaskWorkflow, workflow.RegisterOptions{Name: DelayedTaskWorkflowName})
	workflow.RegisterWithOptions(w.RecurringTaskWorkflow, workflow.RegisterOptions{Name: RecurringTaskWorkflowName})

	activity.RegisterWithOptions(w.ExpireRequestActivity, activity.RegisterOptions{Name: "ExpireRequestActivity"})
	activity.RegisterWithOptions(w.SweepStaleRequestsActivity, activity.RegisterOptions{Name: "SweepStaleRequestsActivity"})
	activity.RegisterWithOptions(w.SyncMemberDirectoryActivity, activity.RegisterOptions{Name: "SyncMemberDirectoryActivity"})
}

func (w *ExpiryWorker) Start(service workflowserviceclient.Interface, logger *zap.Logger) {
	workerOptions := worker.Options{
		Logger:        logger,
		MetricsScope:  tally.NewTestScope(TaskListName, map[string]string{}),
		DataConverter: cadence.NewMsgPackDataConverter(),
	}

	worker := worker.New(
		service,
		w.domain,
		TaskListName,
		workerOptions)

	if err := worker.Start(); err != nil {
		panic("Failed to start worker")
	}

	logger.Info("Started Worker.", zap.String("worker", TaskListName))

	select {}
}

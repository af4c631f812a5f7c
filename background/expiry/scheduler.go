package expiry

import (
	"context"
	"time"

	"go.uber.org/cadence/.gen/go/shared"
	"go.uber.org/cadence/client"
	"go.uber.org/cadence/workflow"
)

const (
	// delayedTaskSlack bounds how long a delayed task may run past its delay
	delayedTaskSlack  = time.Hour
	recurringTaskTime = 30 * time.Minute
	startTimeout      = 10 * time.Second
)

// workflowStarter is satisfied by cadence.CadenceClient
type workflowStarter interface {
	StartWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (*workflow.Execution, error)
}

// Scheduler arms lifecycle jobs as cadence workflows. The workflow id is the
// job id, so arming the same job twice is rejected by cadence itself.
type Scheduler struct {
	client workflowStarter
}

func NewScheduler(c workflowStarter) *Scheduler {
	return &Scheduler{client: c}
}

func (s *Scheduler) ScheduleOnce(ctx context.Context, jobID string, delay time.Duration, task string, args ...string) error {
	options := client.StartWorkflowOptions{
		ID:                           jobID,
		TaskList:                     TaskListName,
		ExecutionStartToCloseTimeout: delay + delayedTaskSlack,
		WorkflowIDReusePolicy:        client.WorkflowIDReusePolicyRejectDuplicate,
	}

	if args == nil {
		args = []string{}
	}
	_, err := s.client.StartWorkflow(ctx, options, DelayedTaskWorkflowName, delay, task, args)
	return ignoreAlreadyStarted(err)
}

func (s *Scheduler) ScheduleRecurring(jobID, cronSpec, task string) error {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	options := client.StartWorkflowOptions{
		ID:                           jobID,
		TaskList:                     TaskListName,
		ExecutionStartToCloseTimeout: recurringTaskTime,
		CronSchedule:                 cronSpec,
	}

	_, err := s.client.StartWorkflow(ctx, options, RecurringTaskWorkflowName, task)
	return ignoreAlreadyStarted(err)
}

func ignoreAlreadyStarted(err error) error {
	if _, ok := err.(*shared.WorkflowExecutionAlreadyStartedError); ok {
		return nil
	}
	return err
}

package background

import (
	"context"
	"time"

	"github.com/RichardKnop/machinery/v1/backends/result"
	"github.com/RichardKnop/machinery/v1/tasks"
)

// now is alias of `time.Now` so tests can pin task ETAs
var now = time.Now

// taskSender is the part of *machinery.Server a TaskScheduler needs
type taskSender interface {
	SendTaskWithContext(ctx context.Context, signature *tasks.Signature) (*result.AsyncResult, error)
	RegisterPeriodicTask(spec, name string, signature *tasks.Signature) error
}

// TaskScheduler arms lifecycle jobs on the machinery broker. One-shot jobs
// are delayed tasks whose UUID is the job id.
type TaskScheduler struct {
	server taskSender
}

func NewTaskScheduler(server taskSender) *TaskScheduler {
	return &TaskScheduler{server: server}
}

func (s *TaskScheduler) ScheduleOnce(ctx context.Context, jobID string, delay time.Duration, task string, args ...string) error {
	eta := now().Add(delay).UTC()

	signature := &tasks.Signature{
		UUID: jobID,
		Name: task,
		ETA:  &eta,
		Args: stringArgs(args),
	}

	if _, err := s.server.SendTaskWithContext(ctx, signature); err != nil {
		return err
	}

	log.WithField("job_id", jobID).WithField("eta", eta).Debug("task scheduled")
	return nil
}

// ScheduleRecurring registers a cron task on this process. Machinery guards
// periodic tasks with its lock so that only one process sends each tick.
func (s *TaskScheduler) ScheduleRecurring(jobID, cronSpec, task string) error {
	return s.server.RegisterPeriodicTask(cronSpec, jobID, &tasks.Signature{Name: task})
}

func stringArgs(values []string) []tasks.Arg {
	args := make([]tasks.Arg, 0, len(values))
	for _, v := range values {
		args = append(args, tasks.Arg{Type: "string", Value: v})
	}
	return args
}

package background

import (
	"context"
	"errors"
	"time"

	"github.com/RichardKnop/machinery/v1"

	"github.com/bitmark-inc/huddle-api/consts"
)

const taskTimeout = 2 * time.Minute

// BackgroundManager runs the request lifecycle jobs on machinery workers
type BackgroundManager struct {
	Background

	taskServer *machinery.Server

	worker *machinery.Worker
}

func New(b Background, taskServer *machinery.Server) *BackgroundManager {
	return &BackgroundManager{
		Background: b,
		taskServer: taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// RegisterTasks registers every lifecycle job under its task name
func (m *BackgroundManager) RegisterTasks() error {
	return m.taskServer.RegisterTasks(map[string]interface{}{
		consts.TaskExpireRequest:       m.ExpireRequest,
		consts.TaskSweepStaleRequests:  m.SweepStaleRequests,
		consts.TaskSyncMemberDirectory: m.SyncMemberDirectory,
	})
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker("huddle-worker", 5)
	return m.worker.Launch()
}

// ExpireRequest is a background job armed for every request at creation time
func (m *BackgroundManager) ExpireRequest(requestID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	return m.Expire(ctx, requestID)
}

// SweepStaleRequests is a periodic job closing requests whose expiry never ran
func (m *BackgroundManager) SweepStaleRequests() error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	_, err := m.Sweep(ctx)
	return err
}

// SyncMemberDirectory is a periodic job refreshing the member cache
func (m *BackgroundManager) SyncMemberDirectory() error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	_, err := m.SyncDirectory(ctx)
	return err
}

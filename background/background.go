package background

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/huddle-api/consts"
	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/store"
)

const (
	SweepStaleRequestsJobID  = "sweep-stale-requests"
	SyncMemberDirectoryJobID = "sync-member-directory"
)

var (
	ErrUnknownTask     = fmt.Errorf("unknown background task")
	ErrMissingArgument = fmt.Errorf("missing task argument")
	ErrNoDirectory     = fmt.Errorf("member directory sync is not configured")
)

var log = logrus.WithField("prefix", "background")

// Maintainer is the part of the request lifecycle run by background jobs
type Maintainer interface {
	ExpireRequest(ctx context.Context, requestID string) error
	SweepStaleRequests(ctx context.Context) (int, error)
}

// Background is a struct to maintain common clients
// and functions for all background runners
type Background struct {
	Lifecycle Maintainer

	// Directory is the live member directory and Members its cached copy.
	// Both are optional; without them the directory sync is a no-op error.
	Directory huddle.MemberDirectory
	Members   store.MemberCache
}

// Expire closes one request when its expiry job fires
func (b *Background) Expire(ctx context.Context, requestID string) error {
	if requestID == "" {
		return ErrMissingArgument
	}
	return b.Lifecycle.ExpireRequest(ctx, requestID)
}

// Sweep closes requests whose expiry job never fired
func (b *Background) Sweep(ctx context.Context) (int, error) {
	return b.Lifecycle.SweepStaleRequests(ctx)
}

// SyncDirectory copies the workspace member list into the cache
func (b *Background) SyncDirectory(ctx context.Context) (int64, error) {
	if b.Directory == nil || b.Members == nil {
		return 0, ErrNoDirectory
	}

	members, err := b.Directory.ListMembers(ctx)
	if err != nil {
		return 0, err
	}

	count, err := b.Members.ReplaceMembers(ctx, members)
	if err != nil {
		return 0, err
	}

	log.WithField("count", count).Info("member directory synced")
	return count, nil
}

// ArmMaintenanceJobs registers the recurring stale sweep and, when a cron
// spec is set, the member directory sync.
func ArmMaintenanceJobs(scheduler huddle.ExpiryScheduler, c huddle.Config) error {
	if c.SweepCron != "" {
		if err := scheduler.ScheduleRecurring(SweepStaleRequestsJobID, c.SweepCron, consts.TaskSweepStaleRequests); err != nil {
			return err
		}
	}

	if c.DirectorySyncCron != "" {
		if err := scheduler.ScheduleRecurring(SyncMemberDirectoryJobID, c.DirectorySyncCron, consts.TaskSyncMemberDirectory); err != nil {
			return err
		}
	}

	return nil
}

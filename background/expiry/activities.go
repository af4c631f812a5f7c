package expiry

import (
	"context"

	"go.uber.org/cadence/activity"
	"go.uber.org/zap"
)

// ExpireRequestActivity closes one request
func (w *ExpiryWorker) ExpireRequestActivity(ctx context.Context, requestID string) error {
	activity.GetLogger(ctx).Info("Expire request", zap.String("requestID", requestID))
	return w.Expire(ctx, requestID)
}

// SweepStaleRequestsActivity closes requests whose expiry never ran
func (w *ExpiryWorker) SweepStaleRequestsActivity(ctx context.Context) (int, error) {
	return w.Sweep(ctx)
}

func (w *ExpiryWorker) SyncMemberDirectoryActivity(ctx context.Context) (int64, error) {
	return w.SyncDirectory(ctx)
}

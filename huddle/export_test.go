package huddle

import "time"

// SetNow pins the clock used for closed_at and the stale cutoff
func SetNow(f func() time.Time) (restore func()) {
	original := now
	now = f
	return func() { now = original }
}

package consts

import "time"

// Background task names. They are shared by the api server (enqueuer) and
// the workers, so they live here to avoid an import cycle.
const (
	TaskExpireRequest       = "expire_request"
	TaskSweepStaleRequests  = "sweep_stale_requests"
	TaskSyncMemberDirectory = "sync_member_directory"
)

const (
	DefaultCloseAfter = 30 * time.Minute

	// DefaultStaleGrace is added on top of the close delay before the sweep
	// treats a request as having lost its expiry job.
	DefaultStaleGrace = 10 * time.Minute

	DefaultCommunicationPrefix = "iletisim"
	DefaultHelpPrefix          = "yardim"

	DefaultLanguage = "en"
	DefaultTimezone = "GMT+3"

	DefaultSweepCron         = "*/10 * * * *"
	DefaultDirectorySyncCron = "0 6 * * *"

	DefaultRateLimitRequests = 5
	DefaultRateLimitWindow   = time.Minute

	// MaxChannelNameLength is the longest channel name the chat platform accepts
	MaxChannelNameLength = 80
)

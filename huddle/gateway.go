package huddle

import (
	"context"
	"strings"
	"time"

	"github.com/bitmark-inc/huddle-api/schema"
)

// NotificationGateway is the messaging platform as the lifecycle sees it
type NotificationGateway interface {
	CreateChannel(ctx context.Context, name string, isPrivate bool) (string, error)
	InviteUsers(ctx context.Context, channelID string, userIDs ...string) error
	ArchiveChannel(ctx context.Context, channelID string) error
	OpenDirectConversation(ctx context.Context, userIDs ...string) (string, error)
	PostMessage(ctx context.Context, channelID string, msg Message) (MessageRef, error)
	UpdateMessage(ctx context.Context, ref MessageRef, msg Message) error
	PostEphemeral(ctx context.Context, channelID, userID, text string) error
}

// ExpiryScheduler arms background jobs. Job ids must be unique; re-using a
// job id is undefined, which is why they are derived from the request id.
type ExpiryScheduler interface {
	ScheduleOnce(ctx context.Context, jobID string, delay time.Duration, task string, args ...string) error
	ScheduleRecurring(jobID, cronSpec, task string) error
}

// MemberDirectory lists workspace members
type MemberDirectory interface {
	ListMembers(ctx context.Context) ([]schema.Member, error)
}

// Message is platform neutral rich content. Text is the plain fallback.
type Message struct {
	Text    string
	Header  string
	Body    string
	Notes   []string
	Footer  string
	Buttons []Button
}

// Button is an interactive control routed back into the Coordinator
type Button struct {
	Action  Action
	Label   string
	Value   string
	Primary bool
}

// MessageRef locates a posted message for in-place updates
type MessageRef struct {
	ChannelID string
	Timestamp string
}

func (r MessageRef) IsZero() bool {
	return r.ChannelID == "" || r.Timestamp == ""
}

// String encodes the reference as stored on the request row
func (r MessageRef) String() string {
	if r.IsZero() {
		return ""
	}
	return r.ChannelID + "/" + r.Timestamp
}

// ParseMessageRef reverses MessageRef.String. Malformed input yields a zero ref.
func ParseMessageRef(s string) MessageRef {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return MessageRef{}
	}
	return MessageRef{ChannelID: parts[0], Timestamp: parts[1]}
}

package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	slackgo "github.com/slack-go/slack"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/schema"
)

const defaultTimeout = 15 * time.Second

var errEmptyToken = fmt.Errorf("empty slack token")

// error codes of the Web API the lifecycle treats as success
var (
	alreadyInChannelCodes = map[string]bool{
		"already_in_channel": true,
	}
	channelGoneCodes = map[string]bool{
		"already_archived":  true,
		"channel_not_found": true,
		"is_archived":       true,
	}
)

// Gateway talks to the Slack Web API on behalf of the lifecycle. It is both
// the huddle.NotificationGateway and the live huddle.MemberDirectory.
type Gateway struct {
	api *slackgo.Client
	log *logrus.Entry
}

// New creates a gateway for a bot token. An empty apiURL uses the public
// Slack endpoint.
func New(token, apiURL string) (*Gateway, error) {
	if token == "" {
		return nil, errEmptyToken
	}

	options := []slackgo.Option{
		slackgo.OptionHTTPClient(&http.Client{Timeout: defaultTimeout}),
	}
	if apiURL != "" {
		options = append(options, slackgo.OptionAPIURL(apiURL))
	}

	return &Gateway{
		api: slackgo.New(token, options...),
		log: logrus.WithField("prefix", "slack"),
	}, nil
}

// NewFromViper reads `slack.token` and `slack.api_url`
func NewFromViper() (*Gateway, error) {
	return New(viper.GetString("slack.token"), viper.GetString("slack.api_url"))
}

func (g *Gateway) CreateChannel(ctx context.Context, name string, isPrivate bool) (string, error) {
	channel, err := g.api.CreateConversationContext(ctx, slackgo.CreateConversationParams{
		ChannelName: name,
		IsPrivate:   isPrivate,
	})
	if err != nil {
		return "", classify("conversations.create", err)
	}
	g.log.WithFields(logrus.Fields{"channel_id": channel.ID, "name": name}).Debug("channel created")
	return channel.ID, nil
}

func (g *Gateway) InviteUsers(ctx context.Context, channelID string, userIDs ...string) error {
	if _, err := g.api.InviteUsersToConversationContext(ctx, channelID, userIDs...); err != nil {
		return classify("conversations.invite", err)
	}
	return nil
}

func (g *Gateway) ArchiveChannel(ctx context.Context, channelID string) error {
	if err := g.api.ArchiveConversationContext(ctx, channelID); err != nil {
		return classify("conversations.archive", err)
	}
	return nil
}

// OpenDirectConversation opens a DM for one user or a group DM for several
func (g *Gateway) OpenDirectConversation(ctx context.Context, userIDs ...string) (string, error) {
	channel, _, _, err := g.api.OpenConversationContext(ctx, &slackgo.OpenConversationParameters{
		Users:    userIDs,
		ReturnIM: true,
	})
	if err != nil {
		return "", classify("conversations.open", err)
	}
	return channel.ID, nil
}

func (g *Gateway) PostMessage(ctx context.Context, channelID string, msg huddle.Message) (huddle.MessageRef, error) {
	channel, timestamp, err := g.api.PostMessageContext(ctx, channelID, messageOptions(msg)...)
	if err != nil {
		return huddle.MessageRef{}, classify("chat.postMessage", err)
	}
	return huddle.MessageRef{ChannelID: channel, Timestamp: timestamp}, nil
}

func (g *Gateway) UpdateMessage(ctx context.Context, ref huddle.MessageRef, msg huddle.Message) error {
	if _, _, _, err := g.api.UpdateMessageContext(ctx, ref.ChannelID, ref.Timestamp, messageOptions(msg)...); err != nil {
		return classify("chat.update", err)
	}
	return nil
}

func (g *Gateway) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	if _, err := g.api.PostEphemeralContext(ctx, channelID, userID, slackgo.MsgOptionText(text, false)); err != nil {
		return classify("chat.postEphemeral", err)
	}
	return nil
}

// ListMembers reads the whole workspace directory
func (g *Gateway) ListMembers(ctx context.Context) ([]schema.Member, error) {
	users, err := g.api.GetUsersContext(ctx)
	if err != nil {
		return nil, classify("users.list", err)
	}

	now := time.Now().UTC()
	members := make([]schema.Member, 0, len(users))
	for _, u := range users {
		members = append(members, schema.Member{
			ID:        u.ID,
			Name:      u.Name,
			RealName:  u.RealName,
			IsOwner:   u.IsOwner,
			IsAdmin:   u.IsAdmin,
			IsBot:     u.IsBot,
			Deleted:   u.Deleted,
			UpdatedAt: now,
		})
	}
	return members, nil
}

// errorCode extracts the Web API error code, e.g. "channel_not_found"
func errorCode(err error) string {
	var resp slackgo.SlackErrorResponse
	if errors.As(err, &resp) {
		return resp.Err
	}
	return err.Error()
}

// classify wraps the codes the lifecycle tolerates around the huddle
// sentinels and keeps the method name for the logs.
func classify(method string, err error) error {
	code := errorCode(err)
	switch {
	case alreadyInChannelCodes[code]:
		return fmt.Errorf("%s: %w", method, huddle.ErrAlreadyInChannel)
	case channelGoneCodes[code]:
		return fmt.Errorf("%s: %s: %w", method, code, huddle.ErrChannelGone)
	default:
		return fmt.Errorf("%s: %w", method, err)
	}
}

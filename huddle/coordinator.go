package huddle

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/huddle-api/schema"
	"github.com/bitmark-inc/huddle-api/store"
)

// Result is what an interactive action reports back to the acting user
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ChannelID string `json:"channel_id,omitempty"`
}

func rejected(message string) Result {
	return Result{Success: false, Message: message}
}

// ActionHandler routes an interactive control to its operation
type ActionHandler interface {
	Handle(ctx context.Context, action Action, requestID, userID string) Result
}

// Coordinator handles user actions on open requests. Every operation
// returns a Result and never an error; the only state change it makes, the
// help claim, is a single conditional update.
type Coordinator struct {
	store   store.RequestStore
	gateway NotificationGateway
	texts   texts
}

func NewCoordinator(s store.RequestStore, gateway NotificationGateway, config Config) *Coordinator {
	return &Coordinator{
		store:   s,
		gateway: gateway,
		texts:   newTexts(config),
	}
}

func (c *Coordinator) Handle(ctx context.Context, action Action, requestID, userID string) Result {
	switch action {
	case ActionJoin:
		return c.Join(ctx, requestID, userID)
	case ActionClaim:
		return c.Claim(ctx, requestID, userID)
	case ActionDetails:
		return c.Details(ctx, requestID)
	default:
		return rejected(c.texts.get("request.unsupported_action", nil))
	}
}

// load fetches a request on which action is legal. A non-nil Result is the
// rejection to return.
func (c *Coordinator) load(requestID string, action Action) (*schema.Request, *Result) {
	r, err := c.store.GetRequest(requestID)
	if err != nil {
		var res Result
		if err == store.ErrRequestNotFound {
			res = rejected(c.texts.get("request.not_found", nil))
		} else {
			log.WithField("request_id", requestID).
				WithError(&PersistenceError{RequestID: requestID, Op: "get", Err: err}).
				Error("request lookup failed")
			res = rejected(c.texts.get("request.failed", nil))
		}
		return nil, &res
	}

	if spec, ok := SpecFor(r.Kind); !ok || !spec.Allows(action) {
		res := rejected(c.texts.get("request.unsupported_action", nil))
		return nil, &res
	}
	return r, nil
}

// Join invites a user into the session channel of an open communication
// request.
func (c *Coordinator) Join(ctx context.Context, requestID, userID string) Result {
	r, res := c.load(requestID, ActionJoin)
	if res != nil {
		return *res
	}

	if r.IsClosed() {
		return rejected(c.texts.get("join.closed", nil))
	}
	channelID := r.SessionChannel()
	if channelID == "" {
		return rejected(c.texts.get("join.no_channel", nil))
	}

	logger := log.WithFields(logrus.Fields{
		"request_id": requestID,
		"channel_id": channelID,
		"user_id":    userID,
	})

	channelData := map[string]interface{}{"Channel": channelID}

	err := c.gateway.InviteUsers(ctx, channelID, userID)
	switch {
	case err == nil:
		if _, err := c.gateway.PostMessage(ctx, channelID, c.texts.joinNotice(userID)); err != nil {
			logger.WithError(err).Warn("join notice not posted")
		}
		logger.Info("user joined session channel")
		return Result{Success: true, Message: c.texts.get("join.success", channelData), ChannelID: channelID}
	case errors.Is(err, ErrAlreadyInChannel):
		return Result{Success: true, Message: c.texts.get("join.already", channelData), ChannelID: channelID}
	case errors.Is(err, ErrChannelGone):
		// expiry archived the channel but has not closed the request yet
		return rejected(c.texts.get("join.closed", nil))
	default:
		logger.WithError(&GatewayError{RequestID: requestID, Op: "invite", Err: err}).Warn("join failed")
		return rejected(c.texts.get("join.failed", nil))
	}
}

// Claim makes helperID the helper of an open help request. Of any number of
// concurrent claims exactly one wins the open -> in_progress update.
func (c *Coordinator) Claim(ctx context.Context, requestID, helperID string) Result {
	r, res := c.load(requestID, ActionClaim)
	if res != nil {
		return *res
	}

	if !r.IsOpen() {
		return rejected(c.claimRejection(r.Status))
	}
	if r.RequesterID == helperID {
		return rejected(c.texts.get("claim.self", nil))
	}

	logger := log.WithFields(logrus.Fields{
		"request_id": requestID,
		"helper_id":  helperID,
	})

	claimed, err := c.store.UpdateRequest(requestID, map[string]interface{}{
		"status":    string(schema.StatusInProgress),
		"helper_id": helperID,
	}, schema.StatusOpen)
	if err != nil {
		logger.WithError(&PersistenceError{RequestID: requestID, Op: "claim", Err: err}).Error("claim failed")
		return rejected(c.texts.get("request.failed", nil))
	}
	if !claimed {
		status := schema.StatusInProgress
		if current, err := c.store.GetRequest(requestID); err == nil {
			status = current.Status
		}
		logger.WithField("status", status).Info("claim lost")
		return rejected(c.claimRejection(status))
	}

	r.Status = schema.StatusInProgress
	r.HelperID = &helperID
	logger.Info("request claimed")

	directChannelID := c.connect(ctx, r)

	return Result{
		Success:   true,
		Message:   c.texts.get("claim.success", c.texts.requestData(r)),
		ChannelID: directChannelID,
	}
}

func (c *Coordinator) claimRejection(status schema.Status) string {
	if status == schema.StatusInProgress {
		return c.texts.get("claim.in_progress", nil)
	}
	return c.texts.get("claim.inactive", nil)
}

// connect runs the best-effort notifications after a won claim and returns
// the direct conversation opened between requester and helper, if any.
func (c *Coordinator) connect(ctx context.Context, r *schema.Request) string {
	helperID := r.Helper()
	logger := log.WithFields(logrus.Fields{
		"request_id": r.ID,
		"helper_id":  helperID,
	})

	if channelID := r.SessionChannel(); channelID != "" {
		err := c.gateway.InviteUsers(ctx, channelID, helperID)
		switch {
		case err == nil:
			if _, err := c.gateway.PostMessage(ctx, channelID, c.texts.claimChannelNotice(helperID)); err != nil {
				logger.WithError(err).Warn("claim notice not posted")
			}
		case errors.Is(err, ErrAlreadyInChannel):
		default:
			logger.WithError(&GatewayError{RequestID: r.ID, Op: "invite_helper", Err: err}).Warn("helper not invited")
		}
	}

	directChannelID, err := c.gateway.OpenDirectConversation(ctx, r.RequesterID, helperID)
	if err != nil {
		logger.WithError(&GatewayError{RequestID: r.ID, Op: "open_direct", Err: err}).Warn("direct conversation not opened")
		directChannelID = ""
	} else if _, err := c.gateway.PostMessage(ctx, directChannelID, c.texts.claimDirectMessage(r)); err != nil {
		logger.WithError(err).Warn("direct introduction not posted")
	}

	if requesterChannelID, err := c.gateway.OpenDirectConversation(ctx, r.RequesterID); err != nil {
		logger.WithError(err).Warn("requester conversation not opened")
	} else if _, err := c.gateway.PostMessage(ctx, requesterChannelID, c.texts.requesterNotice(r)); err != nil {
		logger.WithError(err).Warn("requester notice not posted")
	}

	c.refreshAdvertisement(ctx, r, logger)

	return directChannelID
}

// refreshAdvertisement renders the advertisement from the stored status,
// expiry may have closed the request while the claim notifications were sent
func (c *Coordinator) refreshAdvertisement(ctx context.Context, r *schema.Request, logger *logrus.Entry) {
	current, err := c.store.GetRequest(r.ID)
	if err != nil || current == nil {
		logger.WithError(err).Warn("advertisement not updated: request not reloaded")
		return
	}

	ref := ParseMessageRef(current.Advertisement())
	if ref.IsZero() {
		return
	}

	msg := c.texts.claimedAdvertisement(current)
	if current.IsClosed() {
		msg = c.texts.closedAdvertisement(current)
	}
	if err := c.gateway.UpdateMessage(ctx, ref, msg); err != nil {
		logger.WithError(&GatewayError{RequestID: r.ID, Op: "update_advertisement", Err: err}).Warn("advertisement not updated")
	}
}

// Details describes a request of any kind in any status
func (c *Coordinator) Details(ctx context.Context, requestID string) Result {
	r, res := c.load(requestID, ActionDetails)
	if res != nil {
		return *res
	}
	return Result{Success: true, Message: c.texts.details(r), ChannelID: r.SessionChannel()}
}

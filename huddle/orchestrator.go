package huddle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/huddle-api/consts"
	"github.com/bitmark-inc/huddle-api/schema"
	"github.com/bitmark-inc/huddle-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "huddle")
}

// now is an alias of `time.Now` so tests can pin the clock. Tests that
// replace it must not run in parallel.
var now = time.Now

var errNoScheduler = errors.New("no expiry scheduler configured")

// Lifecycle is the part of the Orchestrator driven by commands and jobs
type Lifecycle interface {
	CreateRequest(ctx context.Context, kind schema.Kind, requesterID, originChannelID, topic, description string) (string, error)
	ExpireRequest(ctx context.Context, requestID string) error
}

// Orchestrator opens requests, provisions their session channel, arms their
// expiry and closes them when it fires. It holds no mutable state; every
// transition is a conditional update in the store.
type Orchestrator struct {
	store     store.RequestStore
	gateway   NotificationGateway
	scheduler ExpiryScheduler
	resolver  *DirectoryResolver
	config    Config
	texts     texts
}

func NewOrchestrator(
	s store.RequestStore,
	gateway NotificationGateway,
	scheduler ExpiryScheduler,
	resolver *DirectoryResolver,
	config Config) *Orchestrator {
	return &Orchestrator{
		store:     s,
		gateway:   gateway,
		scheduler: scheduler,
		resolver:  resolver,
		config:    config,
		texts:     newTexts(config),
	}
}

// CreateRequest persists a request and then builds its supporting
// infrastructure. Only the first persistence is fatal; everything after it
// degrades the request instead of failing the call.
func (o *Orchestrator) CreateRequest(ctx context.Context, kind schema.Kind, requesterID, originChannelID, topic, description string) (string, error) {
	spec, ok := SpecFor(kind)
	if !ok {
		return "", &ValidationError{Field: "kind", Reason: "unknown request kind"}
	}

	r := &schema.Request{
		Kind:            kind,
		RequesterID:     strings.TrimSpace(requesterID),
		OriginChannelID: strings.TrimSpace(originChannelID),
		Topic:           strings.TrimSpace(topic),
		Description:     strings.TrimSpace(description),
		Status:          schema.StatusOpen,
	}
	if err := validateRequest(r); err != nil {
		return "", err
	}

	if err := o.store.CreateRequest(r); err != nil {
		return "", &PersistenceError{Op: "create", Err: err}
	}

	logger := log.WithFields(logrus.Fields{
		"request_id": r.ID,
		"kind":       r.Kind,
		"requester":  r.RequesterID,
	})
	logger.WithField("topic", r.Topic).Info("request created")

	if channelID, err := o.provisionChannel(ctx, r); err != nil {
		logger.WithError(err).Error("session channel not provisioned")
	} else {
		logger.WithField("channel_id", channelID).Info("session channel provisioned")
	}

	if err := o.advertise(ctx, r, spec); err != nil {
		logger.WithError(err).Warn("advertisement not recorded")
	}

	if err := o.armExpiry(ctx, r); err != nil {
		logger.WithError(err).Error("request will not expire on its own")
	}

	return r.ID, nil
}

func validateRequest(r *schema.Request) error {
	switch {
	case r.RequesterID == "":
		return &ValidationError{Field: "requester", Reason: "must not be empty"}
	case r.OriginChannelID == "":
		return &ValidationError{Field: "origin channel", Reason: "must not be empty"}
	case r.Topic == "":
		return &ValidationError{Field: "topic", Reason: "must not be empty"}
	case r.Description == "":
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	return nil
}

// provisionChannel creates the session channel, invites the participants,
// welcomes them and records the channel on the request. On success the
// channel id is also set on r.
func (o *Orchestrator) provisionChannel(ctx context.Context, r *schema.Request) (string, error) {
	name := ChannelName(o.config.prefix(r.Kind), r.ID)
	channelID, err := o.gateway.CreateChannel(ctx, name, o.config.PrivateChannels)
	if err != nil {
		return "", &GatewayError{RequestID: r.ID, Op: "create_channel", Err: err}
	}

	logger := log.WithFields(logrus.Fields{"request_id": r.ID, "channel_id": channelID})

	if _, err := o.store.UpdateRequest(r.ID, map[string]interface{}{
		"session_channel_id": channelID,
	}); err != nil {
		// an unrecorded channel could never be archived, so do not leave it behind
		if archiveErr := o.gateway.ArchiveChannel(ctx, channelID); archiveErr != nil {
			logger.WithError(archiveErr).Warn("orphaned session channel not archived")
		}
		return "", &PersistenceError{RequestID: r.ID, Op: "record_channel", Err: err}
	}
	r.SessionChannelID = &channelID

	invited := o.inviteParticipants(ctx, r, channelID)
	logger.WithField("invited", invited).Debug("participants invited")

	if _, err := o.gateway.PostMessage(ctx, channelID, o.texts.welcome(r)); err != nil {
		logger.WithError(&GatewayError{RequestID: r.ID, Op: "post_welcome", Err: err}).Warn("welcome message not posted")
	}

	return channelID, nil
}

// inviteParticipants invites the requester and the privileged stakeholder
// one by one so that a single failure does not block the others.
func (o *Orchestrator) inviteParticipants(ctx context.Context, r *schema.Request, channelID string) []string {
	invitees := []string{r.RequesterID}
	if stakeholder, ok := o.resolver.FindPrivilegedStakeholder(ctx); ok && stakeholder != r.RequesterID {
		invitees = append(invitees, stakeholder)
	}

	invited := make([]string, 0, len(invitees))
	for _, userID := range invitees {
		err := o.gateway.InviteUsers(ctx, channelID, userID)
		if err != nil && !errors.Is(err, ErrAlreadyInChannel) {
			log.WithFields(logrus.Fields{
				"request_id": r.ID,
				"channel_id": channelID,
				"user_id":    userID,
			}).WithError(&GatewayError{RequestID: r.ID, Op: "invite", Err: err}).Warn("participant not invited")
			continue
		}
		invited = append(invited, userID)
	}
	return invited
}

// advertise posts the interactive advertisement in the origin channel and
// records its reference for later in-place updates.
func (o *Orchestrator) advertise(ctx context.Context, r *schema.Request, spec KindSpec) error {
	ref, err := o.gateway.PostMessage(ctx, r.OriginChannelID, o.texts.advertisement(r, spec))
	if err != nil {
		return &GatewayError{RequestID: r.ID, Op: "post_advertisement", Err: err}
	}
	if ref.IsZero() {
		return nil
	}

	refString := ref.String()
	if _, err := o.store.UpdateRequest(r.ID, map[string]interface{}{
		"advertisement_ref": refString,
	}); err != nil {
		return &PersistenceError{RequestID: r.ID, Op: "record_advertisement", Err: err}
	}
	r.AdvertisementRef = &refString
	return nil
}

func (o *Orchestrator) armExpiry(ctx context.Context, r *schema.Request) error {
	jobID := ExpiryJobID(r.Kind, r.ID)
	if o.scheduler == nil {
		return &SchedulingError{RequestID: r.ID, JobID: jobID, Err: errNoScheduler}
	}

	if err := o.scheduler.ScheduleOnce(ctx, jobID, o.config.CloseAfter, consts.TaskExpireRequest, r.ID); err != nil {
		return &SchedulingError{RequestID: r.ID, JobID: jobID, Err: err}
	}

	log.WithFields(logrus.Fields{
		"request_id": r.ID,
		"job_id":     jobID,
		"delay":      o.config.CloseAfter,
	}).Info("expiry armed")
	return nil
}

// ExpireRequest archives the session channel and closes the request. It is
// idempotent: an absent, already closed or already archived request is not
// an error. Only store failures are returned.
func (o *Orchestrator) ExpireRequest(ctx context.Context, requestID string) error {
	logger := log.WithField("request_id", requestID)

	r, err := o.store.GetRequest(requestID)
	if err != nil {
		if err == store.ErrRequestNotFound {
			logger.Warn("expiring an unknown request")
			return nil
		}
		return &PersistenceError{RequestID: requestID, Op: "get", Err: err}
	}

	if r.IsClosed() {
		logger.Debug("request already closed")
		return nil
	}

	channelID := r.SessionChannel()
	if channelID != "" {
		if err := o.gateway.ArchiveChannel(ctx, channelID); err != nil && !errors.Is(err, ErrChannelGone) {
			logger.WithField("channel_id", channelID).
				WithError(&GatewayError{RequestID: requestID, Op: "archive", Err: err}).
				Warn("session channel not archived, request stays open for the sweep")
			return nil
		}
	}

	prior := []schema.Status{schema.StatusOpen, schema.StatusInProgress}
	if spec, ok := SpecFor(r.Kind); ok {
		prior = spec.PriorStatuses(schema.StatusClosed)
	}

	closedAt := now().UTC()
	closed, err := o.store.UpdateRequest(requestID, map[string]interface{}{
		"status":    string(schema.StatusClosed),
		"closed_at": closedAt,
	}, prior...)
	if err != nil {
		return &PersistenceError{RequestID: requestID, Op: "close", Err: err}
	}
	if !closed {
		logger.Debug("request was closed concurrently")
		return nil
	}

	r.Status = schema.StatusClosed
	r.ClosedAt = &closedAt
	logger.Info("request closed")

	if channelID != "" {
		if _, err := o.gateway.PostMessage(ctx, channelID, o.texts.closureNotice(r)); err != nil {
			logger.WithError(err).Debug("closure notice not posted, channel already gone")
		}
	}

	if ref := ParseMessageRef(r.Advertisement()); !ref.IsZero() {
		if err := o.gateway.UpdateMessage(ctx, ref, o.texts.closedAdvertisement(r)); err != nil {
			logger.WithError(&GatewayError{RequestID: requestID, Op: "update_advertisement", Err: err}).
				Warn("advertisement not updated")
		}
	}

	return nil
}

// SweepStaleRequests expires requests that outlived their channel lifetime
// plus a grace period, which happens when an expiry job was never armed or
// got lost. It returns how many requests were examined.
func (o *Orchestrator) SweepStaleRequests(ctx context.Context) (int, error) {
	cutoff := now().Add(-(o.config.CloseAfter + o.config.StaleGrace))
	requests, err := o.store.ListRequests(store.RequestFilter{
		Statuses:      []schema.Status{schema.StatusOpen, schema.StatusInProgress},
		CreatedBefore: cutoff,
		Limit:         500,
		OldestFirst:   true,
	})
	if err != nil {
		return 0, &PersistenceError{Op: "list_stale", Err: err}
	}

	swept := 0
	for _, r := range requests {
		if err := o.ExpireRequest(ctx, r.ID); err != nil {
			log.WithField("request_id", r.ID).WithError(err).Error("stale request not expired")
			continue
		}
		swept++
	}

	if swept > 0 {
		log.WithField("count", swept).Info("stale requests swept")
	}
	return swept, nil
}
